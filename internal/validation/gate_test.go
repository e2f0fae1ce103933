package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoadd/internal/validation"
)

const (
	testGateCaseValidCaseNameConstant     = "valid_resolved_opens_gate"
	testGateCaseMissingCaseNameConstant   = "missing_keeps_gate_closed"
	testGateCaseUnsafeCaseNameConstant    = "unsafe_keeps_gate_closed"
	testGateCaseBareCaseNameConstant      = "bare_keeps_gate_closed"
	testGateCasePendingCaseNameConstant   = "pending_keeps_gate_closed"
	testGateCaseNoneCaseNameConstant      = "none_keeps_gate_closed"
	testGateCaseEmptyPathCaseNameConstant = "empty_path_keeps_gate_closed"
	testGateRepositoryPathConstant        = "/repositories/example"
	testGateUnsafeOwnerPathConstant       = "/home/alice/repositories/example"
)

func TestCanSubmit(testInstance *testing.T) {
	testCases := []struct {
		name          string
		snapshot      validation.Snapshot
		expectPermits bool
	}{
		{
			name: testGateCaseValidCaseNameConstant,
			snapshot: validation.Snapshot{
				Path:           testGateRepositoryPathConstant,
				Phase:          validation.PhaseResolved,
				Classification: validation.Classification{Kind: validation.ClassificationValid},
			},
			expectPermits: true,
		},
		{
			name: testGateCaseMissingCaseNameConstant,
			snapshot: validation.Snapshot{
				Path:           testGateRepositoryPathConstant,
				Phase:          validation.PhaseResolved,
				Classification: validation.Classification{Kind: validation.ClassificationMissing},
			},
			expectPermits: false,
		},
		{
			name: testGateCaseUnsafeCaseNameConstant,
			snapshot: validation.Snapshot{
				Path:  testGateRepositoryPathConstant,
				Phase: validation.PhaseResolved,
				Classification: validation.Classification{
					Kind:      validation.ClassificationUnsafe,
					OwnerPath: testGateUnsafeOwnerPathConstant,
				},
			},
			expectPermits: false,
		},
		{
			name: testGateCaseBareCaseNameConstant,
			snapshot: validation.Snapshot{
				Path:           testGateRepositoryPathConstant,
				Phase:          validation.PhaseResolved,
				Classification: validation.Classification{Kind: validation.ClassificationBare},
			},
			expectPermits: false,
		},
		{
			name: testGateCasePendingCaseNameConstant,
			snapshot: validation.Snapshot{
				Path:  testGateRepositoryPathConstant,
				Phase: validation.PhasePending,
			},
			expectPermits: false,
		},
		{
			name: testGateCaseNoneCaseNameConstant,
			snapshot: validation.Snapshot{
				Phase: validation.PhaseNone,
			},
			expectPermits: false,
		},
		{
			name: testGateCaseEmptyPathCaseNameConstant,
			snapshot: validation.Snapshot{
				Phase:          validation.PhaseResolved,
				Classification: validation.Classification{Kind: validation.ClassificationValid},
			},
			expectPermits: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectPermits, validation.CanSubmit(testCase.snapshot))
		})
	}
}
