package check_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoadd/internal/check"
	"github.com/temirov/repoadd/internal/execshell"
)

const testCheckCommandWorkTreeFlagConstant = "--is-inside-work-tree"

type checkScriptedExecutor struct {
	responsesByFlag map[string]execshell.ExecutionResult
}

func (executor *checkScriptedExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	for _, argument := range details.Arguments {
		if response, found := executor.responsesByFlag[argument]; found {
			return response, nil
		}
	}
	return execshell.ExecutionResult{}, nil
}

func TestCheckCommandRequiresPathArgument(testInstance *testing.T) {
	builder := &check.CommandBuilder{GitExecutor: &checkScriptedExecutor{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())

	require.Error(testInstance, command.RunE(command, nil))
}

func TestCheckCommandReportsClassification(testInstance *testing.T) {
	repositoryPath := testInstance.TempDir()

	gitExecutor := &checkScriptedExecutor{responsesByFlag: map[string]execshell.ExecutionResult{
		testCheckCommandWorkTreeFlagConstant: {StandardOutput: "true\n"},
	}}

	builder := &check.CommandBuilder{GitExecutor: gitExecutor}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())

	require.NoError(testInstance, command.RunE(command, []string{repositoryPath}))
	require.Equal(testInstance, fmt.Sprintf(testCheckValidOutcomeTemplate, repositoryPath), outputBuffer.String())
}
