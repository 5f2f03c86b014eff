package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/api/tasks/v1"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/auth"
	"github.com/thndrbrrr/gtasks-org-tools/pkg/config"
	"github.com/thndrbrrr/gtasks-org-tools/pkg/gtasks"
	"github.com/thndrbrrr/gtasks-org-tools/pkg/org"
	"github.com/thndrbrrr/gtasks-org-tools/pkg/sync"
)

var rootCmd = &cobra.Command{
	Use:   "gtasks-org",
	Short: "Move tasks between Google Tasks and org-mode files",
	Long: `gtasks-org moves tasks one way at a time between Google Tasks and org files.

pull fetches a tasklist and appends its tasks to an org file as new entries,
optionally completing or deleting the source records afterward. push scans
the configured org files for entries carrying a tag and inserts them as
tasks into a tasklist named after that tag, creating the list if needed.
There is no synchronization state: every run is a one-shot batch.`,
}

func main() {
	cobra.OnInitialize(initViper)
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initViper() {
	viper.SetEnvPrefix("GTASKS_ORG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func registerCommands() {
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(pullCmd())
	rootCmd.AddCommand(pushCmd())
	rootCmd.AddCommand(tasklistsCmd())
	rootCmd.AddCommand(setKeywordsCmd())
}

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			xdgConfigBase, err := auth.GetXdgHome()
			if err != nil {
				return fmt.Errorf("could not find path to configuration file: %w", err)
			}

			tokenFile := filepath.Join(xdgConfigBase, auth.TokenFile)
			if _, err := os.Stat(tokenFile); err == nil {
				log.Printf("Removing existing token file at '%s'", tokenFile)
				if err := os.Remove(tokenFile); err != nil {
					return fmt.Errorf("could not delete token file '%s': %w. Please delete it manually", tokenFile, err)
				}
			} else if !os.IsNotExist(err) {
				log.Printf("could not check token file '%s', error %v", tokenFile, err)
			}

			if _, err := gtasks.NewClient(context.Background()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
			return nil
		},
	}
}

func pullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull <tasklist-id> <file>",
		Short: "Append a tasklist's tasks to an org file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := sync.ParsePostAction(viper.GetString("post-action"))
			if err != nil {
				return err
			}

			syncer, _, err := newSyncer()
			if err != nil {
				return err
			}

			report, err := syncer.Pull(args[0], args[1], action)
			if err != nil {
				return err
			}
			if !report.Found {
				fmt.Printf("tasklist %s not found, nothing to do\n", args[0])
				return nil
			}

			fmt.Printf("fetched %d task(s) from %q\n", report.Fetched, args[0])
			if report.Appended {
				fmt.Printf("appended %d entr(ies) to %s\n", report.Fetched, args[1])
			}
			failed := 0
			for _, pr := range report.PostResults {
				if pr.Err != nil {
					failed++
				}
			}
			if n := len(report.PostResults); n > 0 {
				fmt.Printf("post-action %s: %d attempted, %d failed\n", action, n, failed)
			}
			return nil
		},
	}
	cmd.Flags().String("post-action", "none", "what to do with pulled tasks: none, complete or delete")
	_ = viper.BindPFlag("post-action", cmd.Flags().Lookup("post-action"))
	return cmd
}

func pushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <tag>...",
		Short: "Insert tagged org entries into tasklists named after their tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer, cfg, err := newSyncer()
			if err != nil {
				return err
			}
			if len(cfg.OrgFiles()) == 0 && len(viper.GetStringSlice("files")) == 0 {
				return fmt.Errorf("no org files configured; set org.files in the config or --file")
			}

			results := syncer.PushTags(args)

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Tag", "Tasklist", "Created", "Error"})
			for _, tag := range args {
				res, ok := results[tag]
				if !ok {
					t.AppendRow(table.Row{tag, "-", 0, ""})
					continue
				}
				errText := ""
				if res.Err != nil {
					errText = res.Err.Error()
				}
				t.AppendRow(table.Row{tag, res.TasklistID, len(res.Created), errText})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringSlice("file", nil, "org file to scan (overrides config, repeatable)")
	_ = viper.BindPFlag("files", cmd.Flags().Lookup("file"))
	return cmd
}

func tasklistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasklists",
		Short: "List the account's tasklists",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gtasks.NewClient(context.Background())
			if err != nil {
				return err
			}
			lists, err := client.Tasklists()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Title", "Updated"})
			for _, tl := range lists {
				t.AppendRow(table.Row{tl.Id, tl.Title, tl.Updated})
			}
			t.Render()
			return nil
		},
	}
}

func setKeywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-keywords",
		Short: "Set the state keywords used for imported entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if todo, _ := cmd.Flags().GetString("todo"); todo != "" {
				cfg.Keywords.Todo = todo
			}
			if done, _ := cmd.Flags().GetString("done"); done != "" {
				cfg.Keywords.Done = done
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("Keywords set: open=%s completed=%s\n", cfg.Keywords.Todo, cfg.Keywords.Done)
			return nil
		},
	}
	cmd.Flags().String("todo", "", "keyword for open entries")
	cmd.Flags().String("done", "", "keyword for completed entries")
	return cmd
}

// newSyncer assembles the pipelines from config, the authenticated
// client and the configured org files.
func newSyncer() (*sync.Syncer, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client, err := gtasks.NewClient(context.Background())
	if err != nil {
		return nil, nil, err
	}

	keywords := org.Keywords{Todo: cfg.Keywords.Todo, Done: cfg.Keywords.Done}

	paths := cfg.OrgFiles()
	if override := viper.GetStringSlice("files"); len(override) > 0 {
		paths = override
	}

	s := &sync.Syncer{
		Remote:   client,
		Source:   org.Files{Parser: org.NewParser(keywords), Paths: paths},
		Keywords: keywords,
	}
	if cfg.Hooks.AfterAppend != "" {
		s.AfterAppend = afterAppendHook(cfg.Hooks.AfterAppend)
	}
	return s, cfg, nil
}

// afterAppendHook runs an external command with the written file's
// absolute path as argument and the pulled records as JSON on stdin.
// Hook failures are logged, never surfaced: the append already
// happened.
func afterAppendHook(command string) sync.AfterAppendFunc {
	return func(entries []string, records []*tasks.Task, list *tasks.TaskList, path string) {
		cmd := exec.Command(command, path)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			log.Printf("after-append hook: could not open stdin pipe: %v", err)
			return
		}
		if err := cmd.Start(); err != nil {
			log.Printf("after-append hook: could not start %q: %v", command, err)
			return
		}
		json.NewEncoder(stdin).Encode(records)
		stdin.Close()
		if err := cmd.Wait(); err != nil {
			log.Printf("after-append hook %q failed: %v", command, err)
		}
	}
}
