package benchkit

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "An idempotent developer machine bootstrapper"
	MsgUpShort         = "Probe the machine and run every setup step"
	MsgDoctorShort     = "Probe the machine and report what is installed"
	MsgPlanShort       = "Show what up would do, without doing it"
	MsgDocsShort       = "Display a documentation topic"
	MsgVersionShort    = "Show version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"
	MsgNoSteps      = "Nothing to do: the manifest is empty."

	// Error messages
	MsgErrLoadManifest = "failed to load manifest: %w"
	MsgErrRun          = "run failed: %w"
)

// MsgUsageTemplate is the usage template for every command. It relies
// on the bold/upper/boldUpper template funcs registered by
// initTemplateFormatting.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold (upper .Title)}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// Long messages
const (
	MsgRootLong = `benchkit sets up a developer machine from a declarative manifest:
packages, editor extensions, config files and package sources.

Every step is idempotent: benchkit first checks whether the goal state
already holds and only acts when it does not, so re-running it on a
configured machine changes nothing. Steps needing privileges trigger a
single elevated relaunch with the original flags forwarded verbatim.`

	MsgUpLong = `The 'up' command is benchkit's primary command. It probes the machine
for available tools (package manager, editor CLI, container runtime,
WSL), builds the step list from the manifest, asks for confirmation,
and runs each step in order.

Required steps halt the run on failure unless --keep-going is given.
Optional steps merely record a warning and never affect the exit code.`

	MsgUpExample = `  # Run the full setup
  benchkit up

  # Preview without changing anything
  benchkit up --dry-run

  # Unattended run
  benchkit up --yes --keep-going

  # Leave the docker subsystem out
  benchkit up --skip docker`

	MsgDoctorLong = `Doctor probes the machine for the external tools benchkit's steps
depend on and prints what it found. It performs no installs and
changes nothing.`

	MsgPlanLong = `Plan loads the manifest, probes the machine, and prints the steps up
would run together with each step's current state. It is equivalent
to 'up --dry-run' without the confirmation prompt.`

	MsgDocsLong = `Docs renders one of the bundled documentation topics in the
terminal. Run it without arguments to list the available topics.`

	MsgCompletionLong = `Generate a shell completion script for benchkit.

To load completions:

Bash:
  source <(benchkit completion bash)

Zsh:
  benchkit completion zsh > "${fpath[1]}/_benchkit"

Fish:
  benchkit completion fish | source

PowerShell:
  benchkit completion powershell | Out-String | Invoke-Expression`
)
