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

// ocrCommands creates the signed-image ingestion commands: folder scan,
// OCR processing, the combined sequence and the source-folder cleanup.
func ocrCommands(b *entregaInstance) []*cobra.Command {
	load := &cobra.Command{
		Use:   "cargar-imagenes",
		Short: "register new images from the source folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := b.entrega.LoadImagesFromFolder(cmd.Context())
			return b.flush(err)
		},
	}

	process := &cobra.Command{
		Use:   "procesar-imagenes",
		Short: "OCR registered images into signed PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := b.entrega.ProcessImages(cmd.Context())
			if err == nil {
				logrus.Infof("imágenes procesadas: %d", n)
			}
			return b.flush(err)
		},
	}

	sequence := &cobra.Command{
		Use:   "secuencia",
		Short: "load then process images in one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := b.entrega.RunSequence(cmd.Context())
			if err == nil {
				logrus.Infof("secuencia completada, imágenes procesadas: %d", n)
			}
			return b.flush(err)
		},
	}

	clean := &cobra.Command{
		Use:   "limpiar-carpeta",
		Short: "trash source images and clear the ingestion sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := b.entrega.CleanSourceFolder(cmd.Context())
			return b.flush(err)
		},
	}

	return []*cobra.Command{load, process, sequence, clean}
}
