package osutil

import (
	"testing"
)

func TestID(t *testing.T) {
	var tests = []struct {
		osReleaseFilePath, expected string
	}{
		{
			osReleaseFilePath: "testdata/os-release-ubuntu2204",
			expected:          "ubuntu",
		},
		{
			osReleaseFilePath: "testdata/os-release-void",
			expected:          "void",
		},
		{
			osReleaseFilePath: "testdata/does-not-exist",
			expected:          "",
		},
	}

	for _, test := range tests {
		osRelease = test.osReleaseFilePath
		actual := ID()
		if test.expected != actual {
			t.Fatalf("Expected: %q, got: %q", test.expected, actual)
		}
	}
}
