/*
Copyright (c) MagentoAnon Authors.

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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/groggu/MagentoAnon/src/utils"
)

var (
	cfgFile string
	runID   string
)

var rootCmd = &cobra.Command{
	Use:   "magento-anon",
	Short: "Anonymize or remove one customer's PII across a Magento 1 database",
	Long: `A one-off cleanup tool for support engineers: anonymizes or removes all
personally identifiable information belonging to a single customer across the
related record graph (profile, addresses, quotes, orders, payments, grid
projections, product alerts, wishlists).

Based on the PI data reference:
https://devdocs.magento.com/compliance/privacy/pi-data-reference-m1.html`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		InitLogging(bool(debugMode))
		runID = uuid.New().String()
		log.Infof("run id: %s", runID)
		log.Infof("args: %v", redactedArgs())
	},

	Run: func(cmd *cobra.Command, args []string) {
		// No action keyword selects no phases; only usage is shown.
		cmd.Help()
		os.Exit(0)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.magento-anon.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".magento-anon")
	}

	viper.SetEnvPrefix("MAGENTO_ANON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("db.port", 3306)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// redactedArgs returns os.Args with any password value masked before it
// reaches the audit log.
func redactedArgs() []string {
	args := make([]string, len(os.Args))
	copy(args, os.Args)
	for i, opt := range args {
		switch {
		case opt == "--db-password":
			if i+1 < len(args) {
				args[i+1] = "XXX"
			}
		case strings.HasPrefix(opt, "--db-password="):
			args[i] = "--db-password=XXX"
		}
	}
	return args
}

// errExitWithUsage reports a configuration problem, shows usage and
// terminates. Nothing has touched the store at this point.
func errExitWithUsage(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
	utils.ErrExit(format, args...)
}
