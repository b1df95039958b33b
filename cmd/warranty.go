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

// warrantyCommands creates the command that emails the expiring-warranty
// summary and records each notified serial in the mail log.
func warrantyCommands(b *entregaInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "enviar-mail",
		Short: "notify warranties expiring in 1 or 3 months",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := b.entrega.NotifyWarranties(cmd.Context())
			if err == nil {
				logrus.Infof("garantías notificadas: %d", n)
			}
			return b.flush(err)
		},
	}
}
