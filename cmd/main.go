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

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/entregahq/entrega"
	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/docgen"
	"github.com/entregahq/entrega/filestore"
	"github.com/entregahq/entrega/internal/mailer"
	"github.com/entregahq/entrega/internal/notification"
	"github.com/entregahq/entrega/invgate"
	"github.com/entregahq/entrega/ocr"
	"github.com/entregahq/entrega/store"
)

// Entrega represents the CLI application, encapsulating the root Cobra command.
type Entrega struct {
	cmd *cobra.Command
}

// entregaInstance holds the pipeline service and its configuration, shared
// by every subcommand. The row store handle is kept so commands can flush
// the workbook after a pass.
type entregaInstance struct {
	entrega *entrega.Entrega
	rows    *store.ExcelStore
	cnf     *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the pipeline service
// before running any command.
func preRun(app *entregaInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		service, rows, err := setupEntrega(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.entrega = service
		app.rows = rows
		app.cnf = cnf

		return nil
	}
}

// setupEntrega wires the pipeline service from the configuration: the
// workbook, the local file store, the PDF renderer, the ticketing client,
// the SMTP mailer and the OCR extractor.
func setupEntrega(cfg *config.Configuration) (*entrega.Entrega, *store.ExcelStore, error) {
	rows, err := store.OpenExcel(cfg.Workbook)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening workbook: %v", err)
	}

	files := filestore.NewLocal()
	renderer := docgen.NewPDFRenderer(files, cfg.TemplateFile, cfg.Folders.Scratch)
	tickets := invgate.NewClient(cfg.InvGate.BaseURL, cfg.InvGate.User, cfg.InvGate.Password)
	mail := mailer.NewSMTP(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.From)
	extractor := ocr.NewHTTPExtractor(cfg.OCR.URL, cfg.OCR.APIKey)

	return entrega.NewEntrega(rows, files, renderer, tickets, mail, extractor), rows, nil
}

// flush persists the workbook after a command's pass; command errors take
// precedence over flush errors.
func (b *entregaInstance) flush(runErr error) error {
	if runErr != nil {
		notification.NotifyError(runErr)
		return runErr
	}
	if err := b.rows.Flush(); err != nil {
		notification.NotifyError(err)
		return err
	}
	return nil
}

// NewCLI creates the command-line interface for the entrega application.
// Each subcommand is an argument-less, fixed-behavior entry point.
func NewCLI() *Entrega {
	var configFile string
	b := &entregaInstance{}

	var rootCmd = &cobra.Command{
		Use:   "entrega",
		Short: "Asset handoff paperwork automation",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./entrega.json", "Configuration file for the pipeline")

	rootCmd.PersistentPreRunE = preRun(b, &configFile)

	rootCmd.AddCommand(intakeCommands(b))
	rootCmd.AddCommand(actaCommands(b)...)
	rootCmd.AddCommand(warrantyCommands(b))
	rootCmd.AddCommand(ocrCommands(b)...)

	return &Entrega{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w Entrega) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
