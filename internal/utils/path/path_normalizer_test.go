package pathutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repoadd/internal/utils/path"
)

const (
	testCaseEmptyInputCaseNameConstant        = "empty_input"
	testCaseWhitespaceOnlyCaseNameConstant    = "whitespace_only"
	testCaseAbsolutePathCaseNameConstant      = "absolute_path_cleaned"
	testCaseRelativePathCaseNameConstant      = "relative_path_rooted"
	testCaseTildeExpansionCaseNameConstant    = "tilde_expanded"
	testCaseBareTildeCaseNameConstant         = "bare_tilde"
	testCaseTrailingSeparatorCaseNameConstant = "trailing_separator_removed"
	testCaseParentTraversalCaseNameConstant   = "parent_traversal_collapsed"
	testNormalizerTildeRelativePathConstant   = "Projects/example"
	testNormalizerWhitespacePaddingConstant   = "  "
	testNormalizerFakeHomeDirectoryConstant   = "/home/normalizer"
)

func fakeHomeProvider() (string, error) {
	return testNormalizerFakeHomeDirectoryConstant, nil
}

func TestPathNormalizerNormalize(testInstance *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{
			name:         testCaseEmptyInputCaseNameConstant,
			input:        "",
			expectedPath: "",
		},
		{
			name:         testCaseWhitespaceOnlyCaseNameConstant,
			input:        testNormalizerWhitespacePaddingConstant,
			expectedPath: "",
		},
		{
			name:         testCaseAbsolutePathCaseNameConstant,
			input:        "/repositories//example",
			expectedPath: "/repositories/example",
		},
		{
			name:         testCaseRelativePathCaseNameConstant,
			input:        "repositories/example",
			expectedPath: "/repositories/example",
		},
		{
			name:         testCaseTildeExpansionCaseNameConstant,
			input:        filepath.Join("~", testNormalizerTildeRelativePathConstant),
			expectedPath: filepath.Join(testNormalizerFakeHomeDirectoryConstant, testNormalizerTildeRelativePathConstant),
		},
		{
			name:         testCaseBareTildeCaseNameConstant,
			input:        "~",
			expectedPath: testNormalizerFakeHomeDirectoryConstant,
		},
		{
			name:         testCaseTrailingSeparatorCaseNameConstant,
			input:        "/repositories/example/",
			expectedPath: "/repositories/example",
		},
		{
			name:         testCaseParentTraversalCaseNameConstant,
			input:        "/repositories/example/../other",
			expectedPath: "/repositories/other",
		},
	}

	normalizer := pathutils.NewPathNormalizerWithExpander(pathutils.NewHomeExpanderWithProvider(fakeHomeProvider))

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			normalizedPath := normalizer.Normalize(testCase.input)
			require.Equal(subTest, testCase.expectedPath, normalizedPath)
		})
	}
}

func TestPathNormalizerIsIdempotent(testInstance *testing.T) {
	normalizer := pathutils.NewPathNormalizerWithExpander(pathutils.NewHomeExpanderWithProvider(fakeHomeProvider))

	sampleInputs := []string{
		"",
		"   ",
		"~",
		filepath.Join("~", testNormalizerTildeRelativePathConstant),
		"relative/path",
		"/already/absolute",
		"/with/trailing/",
		"/dotted/./segments/../collapsed",
	}

	for _, sampleInput := range sampleInputs {
		normalizedOnce := normalizer.Normalize(sampleInput)
		normalizedTwice := normalizer.Normalize(normalizedOnce)
		require.Equal(testInstance, normalizedOnce, normalizedTwice)
	}
}

func TestPathNormalizerDefaultExpanderUsesUserHome(testInstance *testing.T) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	normalizer := pathutils.NewPathNormalizer()

	normalizedPath := normalizer.Normalize(filepath.Join("~", testNormalizerTildeRelativePathConstant))
	require.Equal(testInstance, filepath.Join(homeDirectory, testNormalizerTildeRelativePathConstant), normalizedPath)
}
