package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"bikeshare/internal/config"
	"bikeshare/internal/exporter"
	"bikeshare/pkg/contracts/domain"
)

const (
	cityPrompt  = "Enter city name (chicago, new york city, washington): "
	monthPrompt = "Enter month (all, january, february, ... , june): "
	dayPrompt   = "Enter day of week (all, monday, ... , sunday): "

	rawPrompt     = "\nWould you like to see the raw data? Enter yes or no.\n"
	morePrompt    = "\nWould you like to see %d more rows? Enter yes or no.\n"
	restartPrompt = "\nWould you like to restart? Enter yes or no.\n"

	invalidInput = "\nInvalid Input\n"
)

// session is the interactive question and answer loop
type session struct {
	in       *bufio.Scanner
	out      io.Writer
	service  analyzer
	pageSize int
}

func newSession(in io.Reader, out io.Writer, service analyzer, pageSize int) *session {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &session{
		in:       bufio.NewScanner(in),
		out:      out,
		service:  service,
		pageSize: pageSize,
	}
}

// Run repeats prompt, analysis and raw data paging until the user declines
// to restart or input ends
func (s *session) Run(ctx context.Context) error {
	for {
		city, criteria, ok := s.filters()
		if !ok {
			return s.in.Err()
		}

		result, err := s.service.RunAnalysisTyped(ctx, city, criteria)
		if err != nil {
			return err
		}

		report := exporter.NewTextReport(s.out)
		if err := report.Write(result); err != nil {
			return err
		}

		if err := s.rawData(result.Table); err != nil {
			return err
		}

		fmt.Fprint(s.out, restartPrompt)
		if answer, ok := s.readLine(); !ok || !isYes(answer) {
			return s.in.Err()
		}
	}
}

// filters asks for city, month and day. ok is false when input ended first.
func (s *session) filters() (domain.City, domain.FilterCriteria, bool) {
	fmt.Fprint(s.out, "\nHello! Let's explore some US bikeshare data!\n")

	var (
		city     domain.City
		criteria domain.FilterCriteria
		err      error
	)
	ok := s.ask(cityPrompt, func(answer string) error {
		city, err = domain.ParseCity(answer)
		return err
	}) && s.ask(monthPrompt, func(answer string) error {
		criteria.Month, err = domain.ParseMonth(answer)
		return err
	}) && s.ask(dayPrompt, func(answer string) error {
		criteria.Day, err = domain.ParseDay(answer)
		return err
	})
	if !ok {
		return "", domain.FilterCriteria{}, false
	}

	fmt.Fprintf(s.out, "\n%s\n", strings.Repeat("-", 40))
	return city, criteria, true
}

// ask repeats prompt until accept takes the answer
func (s *session) ask(prompt string, accept func(string) error) bool {
	for {
		fmt.Fprint(s.out, "\n"+prompt)
		answer, ok := s.readLine()
		if !ok {
			return false
		}
		if accept(answer) == nil {
			return true
		}
		fmt.Fprint(s.out, invalidInput)
	}
}

// rawData shows the filtered rows a page at a time for as long as the user answers yes
func (s *session) rawData(table *domain.TripTable) error {
	fmt.Fprint(s.out, rawPrompt)
	answer, ok := s.readLine()

	pager := exporter.NewRowPager(table, s.pageSize)
	for ok && isYes(answer) {
		if pager.Done() {
			fmt.Fprint(s.out, "\nNo more rows to display.\n")
			return nil
		}

		fmt.Fprintln(s.out)
		if _, err := pager.WriteNext(s.out); err != nil {
			return err
		}
		if pager.Done() {
			fmt.Fprint(s.out, "\nNo more rows to display.\n")
			return nil
		}

		fmt.Fprintf(s.out, morePrompt, s.pageSize)
		answer, ok = s.readLine()
	}
	return nil
}

func (s *session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
