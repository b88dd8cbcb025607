package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/taskform/internal/lib/email"
)

func newPreviewEmailCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "preview-email",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := email.Template(name)

			data, ok := email.PreviewData[tmpl]
			if !ok {
				return fmt.Errorf("unknown email template %q", name)
			}

			body, err := email.Render(tmpl, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "template", string(email.TemplateTaskCreated), "template name")

	return cmd
}
