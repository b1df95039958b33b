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

// intakeCommands creates the command that polls the ticketing view and
// appends new handoff records to the tracking workbook.
func intakeCommands(b *entregaInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "buscar-ingresos",
		Short: "reconcile helpdesk tickets into the actas sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := b.entrega.ReconcileIntake(cmd.Context())
			if err == nil {
				logrus.Infof("ingresos procesados: %d", n)
			}
			return b.flush(err)
		},
	}
}
