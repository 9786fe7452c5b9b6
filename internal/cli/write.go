package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/logger"
)

// DefaultName is the logger name of `wryte write` without --name.
const DefaultName = "Wryte"

type writeFunc func(l *logger.Logger, msg string, args ...any)

// writers maps each accepted level name to the logger method that emits it.
var writers = map[string]writeFunc{
	"debug":    (*logger.Logger).Debug,
	"info":     (*logger.Logger).Info,
	"warning":  (*logger.Logger).Warning,
	"warn":     (*logger.Logger).Warn,
	"error":    (*logger.Logger).Error,
	"critical": (*logger.Logger).Critical,
	"event": func(l *logger.Logger, msg string, args ...any) {
		l.Event(msg, args...)
	},
}

// NewWriteCommand constructs `wryte write LEVEL MESSAGE [OBJECTS...]`.
func NewWriteCommand() *cobra.Command {
	var (
		pretty  bool
		ugly    bool
		jsonify bool
		noColor bool
		simple  bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "write LEVEL MESSAGE [OBJECTS...]",
		Short: "Write a single log entry",
		Long: "Write a single log entry at LEVEL. OBJECTS may be JSON objects or key=value pairs;\n" +
			"anything else is ignored. LEVEL is also the logger's minimum level.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := strings.ToLower(args[0])
			write, ok := writers[level]
			if !ok {
				return fmt.Errorf("%w %q: must be one of %s",
					core.ErrInvalidLevel, args[0], strings.Join(core.LevelNames, ", "))
			}

			mode := logger.PrettyOn
			if ugly && !pretty {
				mode = logger.PrettyOff
			}

			log, err := logger.New(logger.Options{
				Name:        name,
				Level:       level,
				Pretty:      mode,
				JSON:        jsonify,
				NoColor:     noColor,
				Simple:      simple,
				Output:      cmd.OutOrStdout(),
				Diagnostics: logger.NewDiagnostics(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}
			defer log.Close()

			write(log, args[1], parseObjects(args[2:])...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Print console fields as key=value lines and indent JSON (default)")
	cmd.Flags().BoolVar(&ugly, "ugly", false, "Print console fields as a JSON block and JSON on one line")
	cmd.Flags().BoolVarP(&jsonify, "json", "j", false, "Use the JSON formatter instead of the console one")
	cmd.Flags().StringVarP(&name, "name", "n", DefaultName, "Logger name")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors in console output")
	cmd.Flags().BoolVar(&simple, "simple", false, "Print only the message on the console")
	cmd.MarkFlagsMutuallyExclusive("pretty", "ugly")

	return cmd
}

// parseObjects keeps arguments that are valid JSON and turns key=value
// pairs into maps. Other arguments are dropped.
func parseObjects(args []string) []any {
	objects := make([]any, 0, len(args))
	for _, arg := range args {
		if json.Valid([]byte(arg)) {
			objects = append(objects, arg)
			continue
		}
		if key, value, ok := core.SplitKeyValue(arg); ok {
			objects = append(objects, map[string]any{key: value})
		}
	}
	return objects
}
