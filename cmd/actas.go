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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// actaCommands creates the document-generation and link-reconciliation
// commands over the actas sheet.
func actaCommands(b *entregaInstance) []*cobra.Command {
	generate := &cobra.Command{
		Use:   "generar-actas",
		Short: "render a delivery document for every flagged row",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := b.entrega.GenerateActas(cmd.Context())
			if err == nil {
				logrus.Infof("actas generadas: %d", n)
			}
			return b.flush(err)
		},
	}

	// Naive fallback: name-substring match, folder rescanned per row.
	links := &cobra.Command{
		Use:   "buscar-links",
		Short: "back-fill signed-document links by name match",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := b.entrega.LinkSignedActas(cmd.Context())
			return b.flush(err)
		},
	}

	linksIndexed := &cobra.Command{
		Use:   "buscar-links-indexado",
		Short: "back-fill signed-document links by name and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := b.entrega.LinkSignedActasIndexed(cmd.Context())
			return b.flush(err)
		},
	}

	return []*cobra.Command{generate, links, linksIndexed}
}
