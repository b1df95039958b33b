/*
Copyright 2024 Entrega Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

var ConfigStore atomic.Value

// SheetsConfig names the sheets of the tracking workbook.
type SheetsConfig struct {
	Actas     string `json:"actas" envconfig:"ENTREGA_SHEET_ACTAS"`
	Stock     string `json:"stock" envconfig:"ENTREGA_SHEET_STOCK"`
	Garantias string `json:"garantias" envconfig:"ENTREGA_SHEET_GARANTIAS"`
	MailLog   string `json:"mail_log" envconfig:"ENTREGA_SHEET_MAIL_LOG"`
	PDFActas  string `json:"pdf_actas" envconfig:"ENTREGA_SHEET_PDF_ACTAS"`
}

// FoldersConfig holds the file-store folder locations the pipeline files
// documents into.
type FoldersConfig struct {
	Scratch         string `json:"scratch" envconfig:"ENTREGA_FOLDER_SCRATCH"`
	Actas           string `json:"actas" envconfig:"ENTREGA_FOLDER_ACTAS"`
	ActasFirmadas   string `json:"actas_firmadas" envconfig:"ENTREGA_FOLDER_ACTAS_FIRMADAS"`
	ImagenesOrigen  string `json:"imagenes_origen" envconfig:"ENTREGA_FOLDER_IMAGENES_ORIGEN"`
	ImagenesDestino string `json:"imagenes_destino" envconfig:"ENTREGA_FOLDER_IMAGENES_DESTINO"`
}

// InvGateConfig holds the ticketing API endpoint and credentials. The
// credential pair is sent as HTTP Basic auth, encoded once per call.
type InvGateConfig struct {
	BaseURL  string `json:"base_url" envconfig:"ENTREGA_INVGATE_BASE_URL"`
	ViewID   int    `json:"view_id" envconfig:"ENTREGA_INVGATE_VIEW_ID"`
	User     string `json:"user" envconfig:"ENTREGA_INVGATE_USER"`
	Password string `json:"password" envconfig:"ENTREGA_INVGATE_PASSWORD"`
}

// EmailConfig holds the warranty notification recipient and the SMTP
// relay used to send it.
type EmailConfig struct {
	To       string `json:"to" envconfig:"ENTREGA_EMAIL_TO"`
	Subject  string `json:"subject" envconfig:"ENTREGA_EMAIL_SUBJECT"`
	From     string `json:"from" envconfig:"ENTREGA_EMAIL_FROM"`
	SMTPHost string `json:"smtp_host" envconfig:"ENTREGA_SMTP_HOST"`
	SMTPPort int    `json:"smtp_port" envconfig:"ENTREGA_SMTP_PORT"`
	SMTPUser string `json:"smtp_user" envconfig:"ENTREGA_SMTP_USER"`
	SMTPPass string `json:"smtp_pass" envconfig:"ENTREGA_SMTP_PASS"`
}

// OCRConfig holds the external text-extraction service endpoint.
type OCRConfig struct {
	URL    string `json:"url" envconfig:"ENTREGA_OCR_URL"`
	APIKey string `json:"api_key" envconfig:"ENTREGA_OCR_API_KEY"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string        `json:"project_name" envconfig:"ENTREGA_PROJECT_NAME"`
	Workbook     string        `json:"workbook" envconfig:"ENTREGA_WORKBOOK"`
	TemplateFile string        `json:"template_file" envconfig:"ENTREGA_TEMPLATE_FILE"`
	Sheets       SheetsConfig  `json:"sheets"`
	Folders      FoldersConfig `json:"folders"`
	InvGate      InvGateConfig `json:"invgate"`
	Email        EmailConfig   `json:"email"`
	OCR          OCRConfig     `json:"ocr"`
	Notification Notification  `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("entrega", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called entrega.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Entrega"
	}

	if cnf.Workbook == "" {
		log.Println("Error: Workbook path is empty. It's a required field.")
		return errors.New("workbook path is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Workbook = strings.TrimSpace(cnf.Workbook)
	cnf.TemplateFile = strings.TrimSpace(cnf.TemplateFile)
	cnf.InvGate.BaseURL = strings.TrimSpace(cnf.InvGate.BaseURL)

	// Default sheet names follow the tracking workbook layout.
	if cnf.Sheets.Actas == "" {
		cnf.Sheets.Actas = "Actas de entrega"
	}
	if cnf.Sheets.Stock == "" {
		cnf.Sheets.Stock = "StockBD"
	}
	if cnf.Sheets.Garantias == "" {
		cnf.Sheets.Garantias = "Garantia Notebooks"
	}
	if cnf.Sheets.MailLog == "" {
		cnf.Sheets.MailLog = "mailLog"
	}
	if cnf.Sheets.PDFActas == "" {
		cnf.Sheets.PDFActas = "PDFActasFirmadas"
	}

	if cnf.Email.Subject == "" {
		cnf.Email.Subject = "Notificación de garantías próximas a vencer"
	}
	if cnf.Email.SMTPPort == 0 {
		cnf.Email.SMTPPort = 587
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	if mockConfig.Workbook == "" {
		mockConfig.Workbook = "entrega.xlsx"
	}
	_ = mockConfig.validateAndAddDefaults()
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
