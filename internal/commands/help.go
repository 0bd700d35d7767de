package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for gauge",
	Long:  `Display detailed help for all gauge commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 ██████╗  █████╗ ██╗   ██╗ ██████╗ ███████╗
██╔════╝ ██╔══██╗██║   ██║██╔════╝ ██╔════╝
██║  ███╗███████║██║   ██║██║  ███╗█████╗
██║   ██║██╔══██║██║   ██║██║   ██║██╔══╝
╚██████╔╝██║  ██║╚██████╔╝╚██████╔╝███████╗
 ╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚══════╝

gauge - Tasks, focus timer and stats

COMMANDS:

  add <task>              Create a new task with smart parsing
    -d, --desc            Description
    -t, --tag             Tag (default General)
    -p, --priority        Priority: low|medium|high
    -g, --goal            Focus goal (45, 45m, 1h30m)

    Smart syntax:
      #tag          Set the tag
      +priority     Set priority (low/medium/high)
      ~45m          Set the focus goal

    Example:
      gauge add "Write report #work +high ~50m"

  ls                      List pending tasks
    -a, --all             Include completed tasks
    --done                Only completed tasks

  search <query>          Search title, description, tag and priority
    -l, --limit           Limit number of results
    --json                JSON output

  start <id>              Start focusing on a task (pauses any other)
    --no-ui               Start without the focus screen
                          (counts toward the task total, not daily stats)
  pause                   Pause the running session
  status                  Show the running session
  focus [id]              Open the focus screen
    Keys:
      space         Pause/resume
      d             Mark done and exit
      esc/q         Exit, session keeps running

  done <id>               Toggle completed/todo
  rm <id>                 Remove a task

  stats                   Streak, heatmap and weekly focus
  export                  Export tasks and history
    -f, --format          json|yaml|toml
    -o, --output          Write to file

  version                 Show version
  help                    Show this help

Task ids can be shortened to any unique prefix, as shown by 'gauge ls'.

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.gauge/config.yaml)
  --data-dir <dir>        Data directory (default ~/.gauge)
  -v, --verbose           Debug logging

`)
}
