package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/medenrich/core"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  core.Priority
	}{
		{"low", core.PriorityLow},
		{"medium", core.PriorityMedium},
		{"high", core.PriorityHigh},
		{"urgent", core.PriorityUrgent},
		{"URGENT", core.PriorityUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid priority is rejected", func(t *testing.T) {
		_, err := parsePriority("critical")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid priority")
	})
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	findCommand := func(name string) *cli.Command {
		for _, cmd := range app.Commands {
			if cmd.Name == name {
				return cmd
			}
		}
		return nil
	}

	findString := func(cmd *cli.Command, name string) *cli.StringFlag {
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("ingest defaults to stdin", func(t *testing.T) {
		cmd := findCommand("ingest")
		require.NotNil(t, cmd)
		fileFlag := findString(cmd, "file")
		require.NotNil(t, fileFlag)
		assert.Equal(t, "-", fileFlag.Value)
	})

	t.Run("ingest defaults to medium priority", func(t *testing.T) {
		cmd := findCommand("ingest")
		require.NotNil(t, cmd)
		priorityFlag := findString(cmd, "priority")
		require.NotNil(t, priorityFlag)
		assert.Equal(t, "medium", priorityFlag.Value)
	})

	t.Run("reprocess defaults to low priority", func(t *testing.T) {
		cmd := findCommand("reprocess")
		require.NotNil(t, cmd)
		priorityFlag := findString(cmd, "priority")
		require.NotNil(t, priorityFlag)
		assert.Equal(t, "low", priorityFlag.Value)
	})

	t.Run("status command exists", func(t *testing.T) {
		require.NotNil(t, findCommand("status"))
	})
}

func TestSetupLoggerRejectsInvalidLevel(t *testing.T) {
	app := newApp()
	app.Commands = nil
	app.Action = func(c *cli.Context) error { return nil }

	err := app.Run([]string{"medenrich", "--log-level", "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
