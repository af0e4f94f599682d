package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobforge/infrastructure/validate"
)

const validJob = `@echo off
rem header

set nom_job=jfm1aa10

rem ##################################################
set PHASE=00 - Debut du job
rem ##################################################
%PERL% %PF_SKL_PROC%\skl_debutjob.pl

:STEP10
set PHASE=jfm1aa10 - 10 - traitement
%PERL% %PF_SKL_PROC%\skl_infojob.pl
if %errorlevel% NEQ 0 set ERR=Erreur & goto ERREUR

:STEP20
set PHASE=jfm1aa10 - 20 - controle
if %errorlevel% NEQ 0 goto STEP10

rem ##################################################
set PHASE=99 - Fin du job
rem ##################################################
%PERL% %PF_SKL_PROC%\skl_finjob.pl

goto FIN

:ERREUR
%EXIT% 8

:FIN
%EXIT% 0
`

func TestContent(t *testing.T) {
	t.Parallel()

	t.Run("should accept a complete batch job", func(t *testing.T) {
		t.Parallel()

		// when
		report := validate.Content("job/jfm1aa10.bat", []byte(validJob))

		// then
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Warnings)
		assert.Equal(t, 2, report.Phases)
	})

	t.Run("should report every missing skeleton marker", func(t *testing.T) {
		t.Parallel()

		// when
		report := validate.Content("job/broken.bat", []byte("rem nothing here\n"))

		// then
		assert.False(t, report.Valid)
		assert.Contains(t, report.Errors, "missing @echo off directive")
		assert.Contains(t, report.Errors, "missing initial phase 00 block")
		assert.Contains(t, report.Errors, "missing final phase 99 block")
		assert.Contains(t, report.Errors, "missing skl_debutjob.pl call")
		assert.Contains(t, report.Errors, "missing skl_finjob.pl call")
		assert.Contains(t, report.Errors, "missing :ERREUR label")
		assert.Contains(t, report.Errors, "missing :FIN label")
	})

	t.Run("should detect a truncated final phase", func(t *testing.T) {
		t.Parallel()

		// given: everything after STEP10 cut off
		truncated := validJob[:len(validJob)/2]

		// when
		report := validate.Content("job/truncated.bat", []byte(truncated))

		// then
		assert.False(t, report.Valid)
		assert.Contains(t, report.Errors, "missing final phase 99 block")
	})

	t.Run("should warn about gotos to missing step labels", func(t *testing.T) {
		t.Parallel()

		// given
		content := validJob + "\nif %errorlevel% NEQ 0 goto STEP30\n"

		// when
		report := validate.Content("job/jfm1aa10.bat", []byte(content))

		// then
		assert.True(t, report.Valid, "a dangling goto is a warning, not an error")
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "STEP30")
	})

	t.Run("should count lines", func(t *testing.T) {
		t.Parallel()

		// when
		report := validate.Content("x.bat", []byte("@echo off\nrem a\n"))

		// then
		assert.Equal(t, 3, report.Lines)
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("should validate an artifact on disk", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "jfm1aa10.bat")
		require.NoError(t, os.WriteFile(path, []byte(validJob), 0o644))

		// when
		report, err := validate.File(path)

		// then
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Equal(t, path, report.Path)
	})

	t.Run("should fail when the file cannot be read", func(t *testing.T) {
		t.Parallel()

		// when
		report, err := validate.File(filepath.Join(t.TempDir(), "missing.bat"))

		// then
		require.Error(t, err)
		assert.Nil(t, report)
	})
}
