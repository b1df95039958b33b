package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	// Test case with empty ProjectName and Workbook
	cnf := Configuration{
		ProjectName: "",
		Workbook:    "",
	}

	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "workbook path is required" {
		t.Errorf("Expected workbook path required error, got %v", err)
	}

	// Test case with all required fields filled, expect no error
	cnf = Configuration{
		ProjectName: "Test Project",
		Workbook:    "tracking.xlsx",
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Default sheet names are filled in when omitted
	if cnf.Sheets.Actas != "Actas de entrega" {
		t.Errorf("Expected default actas sheet name, got %s", cnf.Sheets.Actas)
	}
	if cnf.Sheets.Stock != "StockBD" {
		t.Errorf("Expected default stock sheet name, got %s", cnf.Sheets.Stock)
	}
	if cnf.Email.SMTPPort != 587 {
		t.Errorf("Expected default SMTP port 587, got %d", cnf.Email.SMTPPort)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "entrega.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up after the test

	// Sample configuration to write to the temp file
	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		Workbook:    "temp.xlsx",
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close() // Close the file so loadConfigFromFile can open it

	// Set an environment variable to override the project name
	os.Setenv("ENTREGA_PROJECT_NAME", "Env Project")
	defer os.Unsetenv("ENTREGA_PROJECT_NAME") // Clean up after the test

	// Load the configuration from the file
	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	// Fetch the loaded configuration
	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Check if the environment variable override worked
	if loadedConfig.ProjectName != "Env Project" {
		t.Errorf("Expected ProjectName to be 'Env Project', got '%s'", loadedConfig.ProjectName)
	}

	// Check if the workbook path was loaded correctly from the file
	if loadedConfig.Workbook != "temp.xlsx" {
		t.Errorf("Expected Workbook to be 'temp.xlsx', got '%s'", loadedConfig.Workbook)
	}
}

func TestInitConfig(t *testing.T) {
	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "entrega.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up after the test

	// Sample configuration to write to the temp file
	sampleConfig := Configuration{
		ProjectName: "InitConfig Test",
		Workbook:    "init.xlsx",
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close() // Close the file so InitConfig can open it

	// Attempt to initialize the configuration using the temporary file
	if err := InitConfig(tmpFile.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	// Fetch the loaded configuration to verify it was loaded correctly
	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Verify the configuration was loaded correctly
	if loadedConfig.ProjectName != "InitConfig Test" {
		t.Errorf("Expected ProjectName to be 'InitConfig Test', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.Workbook != "init.xlsx" {
		t.Errorf("Expected Workbook to be 'init.xlsx', got '%s'", loadedConfig.Workbook)
	}
}
