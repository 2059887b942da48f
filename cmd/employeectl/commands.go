package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q", arg)
	}
	return id, nil
}

// parseFilters turns repeated key=value flags into filters.
func parseFilters(pairs []string) (apiclient.Filters, error) {
	filters := apiclient.Filters{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("filter %q must look like key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func readEmployee(path string) (model.Employee, error) {
	var e model.Employee
	data, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return e, nil
}

func (c *cli) listCmd() *cobra.Command {
	var (
		filterFlags []string
		page, limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterFlags)
			if err != nil {
				return err
			}
			if page > 0 && limit > 0 {
				res, err := c.service().ListPage(cmd.Context(), page, limit, filters)
				if err != nil {
					return err
				}
				return c.printJSON(res)
			}
			employees, err := c.service().List(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return c.printJSON(employees)
		},
	}
	cmd.Flags().StringArrayVarP(&filterFlags, "filter", "f", nil, "filter as key=value, repeatable")
	cmd.Flags().IntVar(&page, "page", 0, "page number, used with --limit")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size, used with --page")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := c.service().GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printJSON(e)
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEmployee(file)
			if err != nil {
				return err
			}
			created, err := c.service().Create(cmd.Context(), e)
			if err != nil {
				return err
			}
			return c.printJSON(created)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "employee JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) updateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace an employee from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := readEmployee(file)
			if err != nil {
				return err
			}
			updated, err := c.service().Update(cmd.Context(), id, e)
			if err != nil {
				return err
			}
			return c.printJSON(updated)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "employee JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deleted, err := c.service().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted: %t\n", deleted)
			return nil
		},
	}
}

func (c *cli) bulkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete [id...]",
		Short: "Delete several employees and print what is left",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			res, err := c.service().BulkDelete(cmd.Context(), ids)
			if err != nil {
				return err
			}
			return c.printJSON(res)
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	var filterFlags []string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search employees, prints an empty list when the search fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterFlags)
			if err != nil {
				return err
			}
			return c.printJSON(c.service().Search(cmd.Context(), args[0], filters))
		},
	}
	cmd.Flags().StringArrayVarP(&filterFlags, "filter", "f", nil, "filter as key=value, repeatable")
	return cmd
}

func (c *cli) managerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports [manager-id]",
		Short: "List the employees reporting to a manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.printJSON(c.service().ListByManager(cmd.Context(), id))
		},
	}
}

func (c *cli) nextIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-id",
		Short: "Print the next free employee id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.service().NextEmployeeID(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, id)
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print employee statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := c.service().Stats(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(stats)
		},
	}
}

func (c *cli) validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an employee JSON file against the backend rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEmployee(file)
			if err != nil {
				return err
			}
			res, err := c.service().Validate(cmd.Context(), e)
			if err != nil {
				return err
			}
			return c.printJSON(res)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "employee JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import employees from a .csv or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := c.service().ImportFile(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}
			return c.printJSON(res)
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		filterFlags []string
		format      string
		out         string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export employees as csv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterFlags)
			if err != nil {
				return err
			}
			var data []byte
			switch format {
			case "csv":
				data, err = c.service().Export(cmd.Context(), filters)
			case "xlsx":
				if out == "" || out == "-" {
					return fmt.Errorf("xlsx export needs --out")
				}
				data, err = c.service().ExportWorkbook(cmd.Context(), filters)
			default:
				return fmt.Errorf("unknown format %q, use csv or xlsx", format)
			}
			if err != nil {
				return err
			}
			return c.writeOutput(out, data)
		},
	}
	cmd.Flags().StringArrayVarP(&filterFlags, "filter", "f", nil, "filter as key=value, repeatable")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	return cmd
}
