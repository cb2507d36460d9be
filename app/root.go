// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/postsportal/postsportal/internal/config"
)

var (
	envFile string // path to the dotenv file
	cfg     config.Config
	err     error

	rootCmd = &cobra.Command{
		Use:   "postsportal",
		Short: "Posts Portal signs users in with Auth0 and serves posts from RapidAPI",
		Long: `Posts Portal is a small web application that signs users in with the
OpenID Connect authorization code flow against Auth0, keeps the signed in user
in a session and proxies a RapidAPI posts endpoint as {title, content} JSON.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&envFile,
		"env-file",
		config.DefaultEnvFile,
		"dotenv file with settings, ignored when missing",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
