// Command madmp validates maDMP documents against the RDA-DMP-Common-Standard
// and prints DCAT projections of their datasets.
package main

import (
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	madmp "github.com/reoring/madmp"
	"github.com/reoring/madmp/v1_0"
	"github.com/reoring/madmp/v1_1"
)

var rootCmd = &cobra.Command{
	Use:           "madmp",
	Short:         "Validate maDMP documents against the RDA-DMP-Common-Standard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// A local .env may carry MADMP_SCHEMA_VERSION; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("schema-version", "",
		"schema version to validate against (1.0 or 1.1; default 1.1)")
	_ = viper.BindPFlag("schema_version", rootCmd.PersistentFlags().Lookup("schema-version"))
	_ = viper.BindEnv("schema_version", madmp.EnvVersion)

	rootCmd.AddCommand(validateCmd, dcatCmd)
}

func session() (*madmp.Session, error) {
	return madmp.NewSession(viper.GetString("schema_version"))
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate one or more maDMP JSON documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}
		failed := false
		for _, path := range args {
			_, err := s.ReadFile(cmd.Context(), path)
			if err != nil {
				if _, ok := madmp.AsIssues(err); !ok {
					return fmt.Errorf("%s: %w", path, err)
				}
				failed = true
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, strings.TrimSuffix(madmp.Report(err), "\n"))
		}
		if failed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

var dcatCmd = &cobra.Command{
	Use:   "dcat FILE",
	Short: "Print the DCAT projection of every dataset in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}
		doc, err := s.ReadFile(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), madmp.Report(err))
			return fmt.Errorf("validation failed")
		}
		var frags []map[string]any
		switch d := doc.(type) {
		case *v1_1.DMP:
			for i := range d.Dataset {
				frags = append(frags, d.Dataset[i].ToDCAT())
			}
		case *v1_0.DMP:
			for i := range d.Dataset {
				frags = append(frags, d.Dataset[i].ToDCAT())
			}
		}
		enc, err := gojson.MarshalIndent(frags, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
