package cli

import (
	"testing"

	"github.com/gabapcia/dictkit/internal/dictfile"
	"github.com/gabapcia/dictkit/internal/literal"
	"github.com/gabapcia/dictkit/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/urfave/cli/v3"
)

func TestReadCommand(t *testing.T) {
	t.Run("should create command with correct metadata", func(t *testing.T) {
		// Act
		cmd := readCommand(newReaderMock(t), FormatJSON)

		// Assert
		assert.Equal(t, "read", cmd.Name)
		assert.Equal(t, "<location>", cmd.ArgsUsage)
		assert.Len(t, cmd.Flags, 1)

		outputFlag := cmd.Flags[0].(*cli.StringFlag)
		assert.Equal(t, "output", outputFlag.Name)
		assert.Equal(t, FormatJSON, outputFlag.Value)
	})

	t.Run("should print the literal as text by default", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("Read", mock.Anything, "settings.py").
			Return(literal.DictOf("x", int64(1), "y", int64(2)), nil).
			Once()

		// Act
		out, err := runApp(t, reader, FormatText, "read", "settings.py")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "{'x': 1, 'y': 2}\n", out)
	})

	t.Run("should honour the output flag", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("Read", mock.Anything, "settings.py").
			Return(literal.List{"<a>", int64(1)}, nil).
			Once()

		// Act
		out, err := runApp(t, reader, FormatText, "read", "--output", "json", "settings.py")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "[\n  \"<a>\",\n  1\n]\n", out)
	})

	t.Run("should return reader errors", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("Read", mock.Anything, "missing.py").Return(nil, dictfile.ErrRead).Once()

		// Act
		out, err := runApp(t, reader, FormatText, "read", "missing.py")

		// Assert
		assert.ErrorIs(t, err, dictfile.ErrRead)
		assert.Empty(t, out)
	})

	t.Run("should fail without a location", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)

		// Act
		_, err := runApp(t, reader, FormatText, "read")

		// Assert
		assert.ErrorIs(t, err, ErrMissingLocation)
		reader.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
	})

	t.Run("should reject unknown output formats", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)

		// Act
		_, err := runApp(t, reader, FormatText, "read", "-o", "xml", "settings.py")

		// Assert
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		reader.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
	})
}
