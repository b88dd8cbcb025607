package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deppfellow/taskform/internal/i18n"
	"github.com/deppfellow/taskform/internal/lib/utils"
	"github.com/deppfellow/taskform/internal/validation"
)

var errInvalidSubmission = errors.New("submission is invalid")

// newValidateCmd checks one submission offline and prints the Result. It
// needs no database or config file.
func newValidateCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a task submission and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := i18n.NewMessages(locale)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			in := validation.FromValues(func(name string) string {
				value, _ := flags.GetString(name)
				return value
			})

			res := validation.New(messages).Validate(in)
			if err := utils.WriteJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}

			if !res.Valid {
				return errInvalidSubmission
			}
			return nil
		},
	}

	cmd.Flags().String(validation.FieldTitle, "", "task title")
	cmd.Flags().String(validation.FieldDescription, "", "task description")
	cmd.Flags().String(validation.FieldEmail, "", "contact email")
	cmd.Flags().StringVar(&locale, "locale", i18n.DefaultLocale,
		"message locale, one of: "+strings.Join(i18n.SupportedLocales(), ", "))

	return cmd
}
