package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ragmesh",
	Short: "Chat with your documents",
	Long: `ragmesh answers questions grounded in documents you upload.

Running ragmesh without arguments starts the interactive chat. Upload
documents with /upload <path> (txt, md, csv, pdf, docx and pptx are
supported), then ask questions in plain text. Answers list the source
documents they were drawn from.`,
	RunE: runChat,
}
