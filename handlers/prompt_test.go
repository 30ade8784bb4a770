package handlers_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/apperrors"
	"MediCore/handlers"
)

func scriptedPrompter(input string) (*handlers.Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return handlers.NewPrompter(strings.NewReader(input), out), out
}

func TestPrompterReadInt(t *testing.T) {
	t.Run("retries until it gets a whole number", func(t *testing.T) {
		p, out := scriptedPrompter("abc\n4.5\n42\n")
		assert.Equal(t, 42, p.ReadInt("Amount"))
		assert.Contains(t, out.String(), "Please enter a whole number.")
	})

	t.Run("returns zero once the input ends", func(t *testing.T) {
		p, _ := scriptedPrompter("garbage\n")
		assert.Equal(t, 0, p.ReadInt("Amount"))
		assert.True(t, p.EOF())
	})
}

func TestPrompterReadFloat(t *testing.T) {
	p, out := scriptedPrompter("much\n9.50\n")
	assert.InDelta(t, 9.50, p.ReadFloat("Price"), 1e-9)
	assert.Contains(t, out.String(), "Please enter a number")
}

func TestPrompterMenu(t *testing.T) {
	t.Run("accepts a listed option", func(t *testing.T) {
		p, out := scriptedPrompter("2\n")
		choice := p.Menu("Main menu", "Quit", "View", "Edit")
		assert.Equal(t, 2, choice)

		printed := out.String()
		assert.Contains(t, printed, "Main menu")
		assert.Contains(t, printed, "1. View")
		assert.Contains(t, printed, "2. Edit")
		assert.Contains(t, printed, "0. Quit")
	})

	t.Run("zero always exits", func(t *testing.T) {
		p, _ := scriptedPrompter("0\n")
		assert.Equal(t, 0, p.Menu("Main menu", "Quit", "View"))
	})

	t.Run("out of range choices are asked again", func(t *testing.T) {
		p, out := scriptedPrompter("7\n-1\n1\n")
		assert.Equal(t, 1, p.Menu("Main menu", "Quit", "View", "Edit"))
		assert.Contains(t, out.String(), "between 0 and 2")
	})

	t.Run("ended input reads as the exit option", func(t *testing.T) {
		p, _ := scriptedPrompter("")
		assert.Equal(t, 0, p.Menu("Main menu", "Quit", "View"))
		assert.True(t, p.EOF())
	})
}

func TestPrompterReadLine(t *testing.T) {
	p, out := scriptedPrompter("  John Smith  \n")
	assert.Equal(t, "John Smith", p.ReadLine("Name"))
	assert.Contains(t, out.String(), "Name: ")
}

func TestPrompterReadDate(t *testing.T) {
	p, out := scriptedPrompter("31-12-1999\n1999-12-31\n")
	got := p.ReadDate("Date of birth")
	assert.Equal(t, time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), got)
	assert.Contains(t, out.String(), "(YYYY-MM-DD)")
	assert.Contains(t, out.String(), "Please use the YYYY-MM-DD format.")
}

func TestPrompterReadDateTime(t *testing.T) {
	p, _ := scriptedPrompter("2026-09-01 10:30:00\n")
	got := p.ReadDateTime("Slot")
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), got)
}

func TestPrompterReadList(t *testing.T) {
	t.Run("splits on semicolons and trims", func(t *testing.T) {
		p, _ := scriptedPrompter("Paracetamol ; Ibuprofen;;  \n")
		assert.Equal(t, []string{"Paracetamol", "Ibuprofen"}, p.ReadList("Medications"))
	})

	t.Run("empty input means no items", func(t *testing.T) {
		p, _ := scriptedPrompter("\n")
		assert.Empty(t, p.ReadList("Medications"))
	})
}

func TestPrompterConfirm(t *testing.T) {
	t.Run("accepts yes and no in both forms", func(t *testing.T) {
		p, _ := scriptedPrompter("YES\nn\n")
		assert.True(t, p.Confirm("Pay now?"))
		assert.False(t, p.Confirm("Pay now?"))
	})

	t.Run("anything else is asked again", func(t *testing.T) {
		p, out := scriptedPrompter("maybe\ny\n")
		assert.True(t, p.Confirm("Delete?"))
		assert.Contains(t, out.String(), "Please answer y or n.")
	})

	t.Run("ended input answers no", func(t *testing.T) {
		p, _ := scriptedPrompter("")
		assert.False(t, p.Confirm("Delete?"))
	})
}

func TestPrompterFail(t *testing.T) {
	t.Run("unwraps application errors to their message", func(t *testing.T) {
		p, out := scriptedPrompter("")
		p.Fail(apperrors.NewNotFound("appointment 7 not found"))
		assert.Equal(t, "Could not do that: appointment 7 not found.\n", out.String())
	})

	t.Run("prints plain errors as they are", func(t *testing.T) {
		p, out := scriptedPrompter("")
		p.Fail(errors.New("disk on fire"))
		assert.Contains(t, out.String(), "disk on fire")
	})
}

func TestPrompterSay(t *testing.T) {
	p, out := scriptedPrompter("")
	p.Say("Signed in as %s (%s).", "Greg House", "Doctor")
	require.Equal(t, "Signed in as Greg House (Doctor).\n", out.String())
}
