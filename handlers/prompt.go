package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"MediCore/apperrors"
	"MediCore/models"
)

// Prompter renders menus and reads operator input line by line.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// EOF reports whether the input has ended.
func (p *Prompter) EOF() bool {
	return p.eof
}

// Say prints one line to the operator.
func (p *Prompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Fail prints a failure in operator friendly form.
func (p *Prompter) Fail(err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		p.Say("Could not do that: %s.", appErr.Message)
		return
	}
	p.Say("Could not do that: %v.", err)
}

// Menu prints a numbered menu and reads a valid choice. Zero is always the
// exit option.
func (p *Prompter) Menu(title, exitLabel string, options ...string) int {
	p.Say("")
	p.Say("%s", title)
	for i, opt := range options {
		p.Say("  %d. %s", i+1, opt)
	}
	p.Say("  0. %s", exitLabel)
	return p.ReadChoice(len(options))
}

// ReadLine asks for one line of input, trimmed.
func (p *Prompter) ReadLine(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// ReadInt keeps asking until it gets a whole number.
func (p *Prompter) ReadInt(label string) int {
	for {
		raw := p.ReadLine(label)
		if p.eof {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
		p.Say("Please enter a whole number.")
	}
}

// ReadFloat keeps asking until it gets a number.
func (p *Prompter) ReadFloat(label string) float64 {
	for {
		raw := p.ReadLine(label)
		if p.eof {
			return 0
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return f
		}
		p.Say("Please enter a number, like 9.50.")
	}
}

// ReadChoice reads a menu selection between 0 and max.
func (p *Prompter) ReadChoice(max int) int {
	for {
		n := p.ReadInt("Choice")
		if p.eof {
			return 0
		}
		if n >= 0 && n <= max {
			return n
		}
		p.Say("Please pick an option between 0 and %d.", max)
	}
}

// ReadDate keeps asking until it gets a calendar date.
func (p *Prompter) ReadDate(label string) time.Time {
	for {
		raw := p.ReadLine(label + " (YYYY-MM-DD)")
		if p.eof {
			return time.Time{}
		}
		t, err := time.Parse(models.DateLayout, raw)
		if err == nil {
			return t
		}
		p.Say("Please use the YYYY-MM-DD format.")
	}
}

// ReadDateTime keeps asking until it gets a date with a time of day.
func (p *Prompter) ReadDateTime(label string) time.Time {
	for {
		raw := p.ReadLine(label + " (YYYY-MM-DD HH:MM:SS)")
		if p.eof {
			return time.Time{}
		}
		t, err := time.Parse(models.DateTimeLayout, raw)
		if err == nil {
			return t
		}
		p.Say("Please use the YYYY-MM-DD HH:MM:SS format.")
	}
}

// ReadList reads a semicolon separated list. Items are trimmed; empty input
// means no items.
func (p *Prompter) ReadList(label string) []string {
	items := models.SplitList(p.ReadLine(label))
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

// Confirm asks a yes or no question.
func (p *Prompter) Confirm(label string) bool {
	for {
		raw := strings.ToLower(p.ReadLine(label + " (y/n)"))
		if p.eof {
			return false
		}
		switch raw {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		p.Say("Please answer y or n.")
	}
}
