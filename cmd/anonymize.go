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
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/groggu/MagentoAnon/src/phases"
	"github.com/groggu/MagentoAnon/src/report"
	"github.com/groggu/MagentoAnon/src/store"
	"github.com/groggu/MagentoAnon/src/utils"
)

var (
	customerEmail string
	websiteCode   string
	forceRun      bool
	quietMode     bool
	testMode      utils.BoolStr
	debugMode     utils.BoolStr
	dbPassword    string
)

var validate = validator.New()

// anonStore is what the command layer needs from a store: the traversal
// interface plus a way to close the connection.
type anonStore interface {
	store.Store
	Close() error
}

// openStoreFn builds the store for a run. A variable so tests can place a
// fake behind the command flow.
var openStoreFn = openStore

// One subcommand per action keyword. The intro line mirrors what the run
// will do, printed before the confirmation prompt.
var actionIntros = map[phases.Action]string{
	phases.ActionAll:           "Will anonymize customer, order data and remove product stock and price alerts",
	phases.ActionCustomerOnly:  "Will anonymize customer and orders",
	phases.ActionOrdersOnly:    "Will anonymize orders only (guest or customer)",
	phases.ActionWishlistsOnly: "Will remove wishlists",
	phases.ActionAlertsOnly:    "Will remove product stock and price alerts",
	phases.ActionMiscOnly:      "Will remove wishlists, product stock and price alerts",
}

func init() {
	actions := []struct {
		use    string
		short  string
		action phases.Action
	}{
		{"customer", "Anonymize customer data, saved addresses and order information", phases.ActionCustomerOnly},
		{"orders", "Anonymize customer order/quote items (guest or customer)", phases.ActionOrdersOnly},
		{"wishlist", "Remove customer wishlists", phases.ActionWishlistsOnly},
		{"alerts", "Remove customer product stock & price alerts", phases.ActionAlertsOnly},
		{"misc", "Remove customer wishlists, product stock & price alerts", phases.ActionMiscOnly},
		{"all", "Run all anonymizations and removals", phases.ActionAll},
	}
	for _, a := range actions {
		rootCmd.AddCommand(newActionCommand(a.use, a.short, a.action))
	}

	rootCmd.PersistentFlags().StringVar(&customerEmail, "email", "",
		"customer email address (required)")
	rootCmd.PersistentFlags().StringVar(&websiteCode, "website", "",
		"website code or id the customer belongs to (required)")
	rootCmd.PersistentFlags().BoolVar(&forceRun, "force", false,
		"run without confirming")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false,
		"run without progress output (errors are still shown)")
	rootCmd.PersistentFlags().Var(&testMode, "test",
		"make no changes to data; report what would change")
	rootCmd.PersistentFlags().Var(&debugMode, "debug",
		"dump each anonymized record's field set to anon.log and console")
	rootCmd.PersistentFlags().StringVar(&dbPassword, "db-password", "",
		"database password (prompted for when mysql config has none)")
}

func newActionCommand(use, short string, action phases.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,

		PreRun: func(cmd *cobra.Command, args []string) {
			validateRunConfig(cmd)
		},

		Run: func(cmd *cobra.Command, args []string) {
			runAnonymization(cmd, action)
		},
	}
}

// validateRunConfig rejects a run before anything touches the store:
// missing or malformed email, missing website. Usage is shown and the
// process exits without side effects.
func validateRunConfig(cmd *cobra.Command) {
	if customerEmail == "" {
		errExitWithUsage(cmd, "Error - Email address is required, see help.")
	}
	if err := validate.Var(customerEmail, "email"); err != nil {
		errExitWithUsage(cmd, "Error - '%s' is not a valid email address", customerEmail)
	}
	if websiteCode == "" {
		errExitWithUsage(cmd, "Error - Website code is required, see help.")
	}
}

func runAnonymization(cmd *cobra.Command, action phases.Action) {
	st, err := openStoreFn()
	if err != nil {
		utils.ErrExit("connecting to the store database: %v", err)
	}
	defer st.Close()

	scope, err := st.ResolveWebsite(websiteCode)
	if errors.Is(err, store.ErrNotFound) {
		errExitWithUsage(cmd, "Error - website %s does not exist", websiteCode)
	} else if err != nil {
		utils.ErrExit("resolving website %s: %v", websiteCode, err)
	}

	rep := report.New(quietMode, bool(debugMode))
	rep.Alertf("\n%s\n", actionIntros[action])
	rep.Alertf("Processing %s\n", customerEmail)

	utils.DoNotPrompt = forceRun
	if !utils.AskPrompt(fmt.Sprintf("Permanently alter data for %s on website %s",
		customerEmail, scope.WebsiteName)) {
		utils.PrintAndLog("Quitting without changes.")
		return
	}

	runner := phases.NewRunner(phases.Config{
		Action: action,
		Email:  customerEmail,
		Scope:  scope,
		DryRun: bool(testMode),
	}, st, rep)

	results, err := runner.Run()
	printSummary(results)
	if err != nil {
		log.Errorf("run halted: %v", err)
		var perr *store.PersistenceError
		if errors.As(err, &perr) {
			color.Red("An error occurred saving %s data for %s, see anon.log for details",
				perr.Phase, customerEmail)
		}
		utils.ErrExit("anonymization halted: %v", err)
	}
}

// openStore builds the production store from viper config. The DSN can be
// given whole (db.dsn) or assembled from parts; a missing mysql password is
// prompted for on the terminal so it never has to live in a config file.
func openStore() (anonStore, error) {
	driver := viper.GetString("db.driver")
	dsn := viper.GetString("db.dsn")

	if dsn == "" && driver == "mysql" {
		passwd := dbPassword
		if passwd == "" {
			passwd = viper.GetString("db.password")
		}
		if passwd == "" {
			fmt.Printf("Password for mysql user %q: ", viper.GetString("db.user"))
			bytePasswd, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return nil, fmt.Errorf("reading db password: %w", err)
			}
			passwd = string(bytePasswd)
		}

		cfg := mysql.NewConfig()
		cfg.User = viper.GetString("db.user")
		cfg.Passwd = passwd
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", viper.GetString("db.host"), viper.GetInt("db.port"))
		cfg.DBName = viper.GetString("db.name")
		dsn = cfg.FormatDSN()
	}
	if dsn == "" {
		return nil, fmt.Errorf("no database configured: set db.dsn or db.host/db.user/db.name")
	}

	return store.OpenSQLStore(driver, dsn)
}
