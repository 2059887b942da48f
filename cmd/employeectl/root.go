package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syrilster/employee-directory/internal"
	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/config"
	"github.com/syrilster/employee-directory/internal/employee"
)

const (
	keyBaseURL  = "EMPLOYEE_API_BASE_URL"
	keyTimeout  = "HTTP_TIMEOUT_SECONDS"
	keyLogLevel = "LOG_LEVEL"
)

// cli carries what every sub command needs once flags and env are resolved.
type cli struct {
	v   *viper.Viper
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out}
	c.v.SetDefault(keyBaseURL, apiclient.DefaultBaseURL)
	c.v.SetDefault(keyTimeout, 10)
	c.v.SetDefault(keyLogLevel, "WARN")
	c.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "employeectl",
		Short:         "Employee directory",
		Long:          `Query and maintain employee records through the employee REST API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.ConfigureLogging(c.v.GetString(keyLogLevel), "text")
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "employee API base url (env "+keyBaseURL+")")
	flags.Int("timeout", 0, "request timeout in seconds (env "+keyTimeout+")")
	flags.String("log-level", "", "log level (env "+keyLogLevel+")")
	_ = c.v.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = c.v.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	_ = c.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.createCmd(),
		c.updateCmd(),
		c.deleteCmd(),
		c.bulkDeleteCmd(),
		c.searchCmd(),
		c.managerCmd(),
		c.nextIDCmd(),
		c.statsCmd(),
		c.validateCmd(),
		c.importCmd(),
		c.exportCmd(),
	)
	return rootCmd
}

// service builds the client from the resolved settings. An unset flag falls back to env,
// then to the default.
func (c *cli) service() *internal.Service {
	baseURL := c.v.GetString(keyBaseURL)
	if baseURL == "" {
		baseURL = apiclient.DefaultBaseURL
	}
	timeout := c.v.GetInt(keyTimeout)
	if timeout <= 0 {
		timeout = 10
	}
	httpCommand := config.NewHTTPCommand(time.Duration(timeout) * time.Second)
	return internal.NewService(employee.NewClient(apiclient.NewConfig(baseURL, httpCommand)), nil)
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(c.out, "wrote %d bytes to %s\n", len(data), path)
	return nil
}
