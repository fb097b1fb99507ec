package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-dashboard/internal/config"
)

func main() {
	// Generate schema JSON
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	// Set the output path
	schemaName := "dashboard-config.json"
	schemaPath := filepath.Join("./config", schemaName)
	sampleConfigPath := filepath.Join("./config", "dashboard-config.yaml")

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Write schema to file
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		log.Fatalf("Failed to write schema to file: %v", err)
	}

	// write sample config to file if it doesn't exist
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := config.SampleYAML()
		if err != nil {
			log.Fatalf("Failed to marshal sample config to yaml: %v", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0o644); err != nil {
			log.Fatalf("Failed to write sample config to file: %v", err)
		}

		log.Printf("Sample config successfully generated at %s", sampleConfigPath)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)
}
