package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name: "eclipse project",
			input: `<?xml version="1.0" encoding="UTF-8"?>
<projectDescription>
	<name>org.example.model</name>
	<comment></comment>
	<buildSpec>
		<buildCommand>
			<name>org.eclipse.jdt.core.javabuilder</name>
		</buildCommand>
	</buildSpec>
</projectDescription>`,
			want: "org.example.model",
		},
		{
			name:  "first name wins even when nested",
			input: `<projectDescription><meta><name>inner</name></meta><name>outer</name></projectDescription>`,
			want:  "inner",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "<projectDescription><name>\n  demo  \n</name></projectDescription>",
			want:  "demo",
		},
		{
			name:    "no name element",
			input:   `<projectDescription><comment/></projectDescription>`,
			wantErr: true,
		},
		{
			name:    "root element only",
			input:   `<name>x</name>`,
			wantErr: true,
		},
		{
			name:    "malformed xml",
			input:   `<projectDescription><name>x</projectDescription>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProjectName(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSymbolicName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "directive stripped",
			input: "Manifest-Version: 1.0\nBundle-SymbolicName: com.example.mod;singleton:=true\n",
			want:  "com.example.mod",
		},
		{
			name:  "plain name",
			input: "Manifest-Version: 1.0\r\nBundle-SymbolicName: com.example.plain\r\n",
			want:  "com.example.plain",
		},
		{
			name:  "continuation line",
			input: "Manifest-Version: 1.0\nBundle-SymbolicName: com.example.very.long.bundle.na\n me;singleton:=true\n",
			want:  "com.example.very.long.bundle.name",
		},
		{
			name:  "header names are case-insensitive",
			input: "bundle-symbolicname: lower.case\n",
			want:  "lower.case",
		},
		{
			name:    "only main section is read",
			input:   "Manifest-Version: 1.0\n\nName: x\nBundle-SymbolicName: not.main\n",
			wantErr: true,
		},
		{
			name:    "missing attribute",
			input:   "Manifest-Version: 1.0\n",
			wantErr: true,
		},
		{
			name:    "empty value",
			input:   "Bundle-SymbolicName: ;singleton:=true\n",
			wantErr: true,
		},
		{
			name:    "garbage header",
			input:   "this is not a manifest\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSymbolicName(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSymbolicName_PlainJar(t *testing.T) {
	_, err := ParseSymbolicName(strings.NewReader("Manifest-Version: 1.0\nCreated-By: javac\n"))
	assert.ErrorIs(t, err, ErrNoSymbolicName)

	_, err = ParseSymbolicName(strings.NewReader("Bundle-SymbolicName: ;singleton:=true\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSymbolicName)
}
