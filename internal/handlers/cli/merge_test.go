package cli

import (
	"testing"

	"github.com/gabapcia/dictkit/internal/kwargs"
	"github.com/gabapcia/dictkit/internal/literal"
	"github.com/gabapcia/dictkit/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func personDefaults() *literal.Dict {
	return literal.DictOf("name", "Allan", "city", "Berlin", "dob", "01/01/01")
}

func TestParseAssignments(t *testing.T) {
	t.Run("should parse values as literals or keep text", func(t *testing.T) {
		// Act
		kw, err := parseAssignments([]string{
			"name='Charles'",
			"city=Paris",
			"age=42",
			"tags=['a', 'b']",
			" padded = x=y ",
			"spaced= 'a b' ",
			"empty=",
			"blank=   ",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, kwargs.Kwargs{
			"name":   "Charles",
			"city":   "Paris",
			"age":    int64(42),
			"tags":   literal.List{"a", "b"},
			"padded": "x=y",
			"spaced": "a b",
			"empty":  "",
			"blank":  "",
		}, kw)
	})

	t.Run("should reject pairs without a separator", func(t *testing.T) {
		// Act
		kw, err := parseAssignments([]string{"name"})

		// Assert
		assert.Nil(t, kw)
		assert.ErrorIs(t, err, ErrInvalidAssignment)
	})

	t.Run("should reject empty keys", func(t *testing.T) {
		// Act
		kw, err := parseAssignments([]string{"=Paris"})

		// Assert
		assert.Nil(t, kw)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}

func TestApplyOverrides(t *testing.T) {
	t.Run("should keep file order and untouched defaults", func(t *testing.T) {
		// Arrange
		doc, err := newDocument(personDefaults())
		require.NoError(t, err)

		// Act
		got, err := applyOverrides(doc, kwargs.Kwargs{"city": "Paris", "name": "Charles"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, literal.DictOf("name", "Charles", "city", "Paris", "dob", "01/01/01"), got)
		assert.Equal(t, personDefaults(), doc.dict)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		// Arrange
		doc, err := newDocument(personDefaults())
		require.NoError(t, err)

		// Act
		got, err := applyOverrides(doc, kwargs.Kwargs{"country": "France"})

		// Assert
		assert.Nil(t, got)
		var unexpected *kwargs.UnexpectedArgumentError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, []string{"country"}, unexpected.Keys)
	})

	t.Run("should refuse mappings with non string keys", func(t *testing.T) {
		// Act
		_, err := newDocument(literal.DictOf(int64(1), "one"))

		// Assert
		assert.ErrorIs(t, err, literal.ErrNonStringKey)
	})
}

func TestMergeCommand(t *testing.T) {
	t.Run("should print the merged mapping", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("ReadDict", mock.Anything, "person.py").Return(personDefaults(), nil).Once()

		// Act
		out, err := runApp(t, reader, FormatText,
			"merge", "--set", "name=Charles", "--set", "city=Paris", "person.py")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "{'name': 'Charles', 'city': 'Paris', 'dob': '01/01/01'}\n", out)
	})

	t.Run("should print the defaults without overrides", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("ReadDict", mock.Anything, "person.py").Return(personDefaults(), nil).Once()

		// Act
		out, err := runApp(t, reader, FormatText, "merge", "person.py")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "{'name': 'Allan', 'city': 'Berlin', 'dob': '01/01/01'}\n", out)
	})

	t.Run("should keep commas inside values", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("ReadDict", mock.Anything, "person.py").Return(personDefaults(), nil).Once()

		// Act
		out, err := runApp(t, reader, FormatJSON, "merge", "--set", "city=[1, 2]", "person.py")

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "Allan", "city": [1, 2], "dob": "01/01/01"}`, out)
	})

	t.Run("should fail on unknown keys", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("ReadDict", mock.Anything, "person.py").Return(personDefaults(), nil).Once()

		// Act
		out, err := runApp(t, reader, FormatText, "merge", "--set", "country=France", "person.py")

		// Assert
		assert.ErrorIs(t, err, kwargs.ErrUnexpectedArgument)
		assert.EqualError(t, err, `got unexpected keyword arguments: ["country"]`)
		assert.Empty(t, out)
	})

	t.Run("should not read the file when an assignment is malformed", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)

		// Act
		_, err := runApp(t, reader, FormatText, "merge", "--set", "country", "person.py")

		// Assert
		assert.ErrorIs(t, err, ErrInvalidAssignment)
		reader.AssertNotCalled(t, "ReadDict", mock.Anything, mock.Anything)
	})

	t.Run("should return reader errors", func(t *testing.T) {
		// Arrange
		reader := newReaderMock(t)
		reader.On("ReadDict", mock.Anything, "person.py").Return(nil, assert.AnError).Once()

		// Act
		_, err := runApp(t, reader, FormatText, "merge", "person.py")

		// Assert
		assert.ErrorIs(t, err, assert.AnError)
	})
}
