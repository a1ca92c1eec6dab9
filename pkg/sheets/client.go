// Package sheets publishes tabular data to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client publishes tabular values to a spreadsheet.
type Client interface {
	// ReplaceSheet clears the named sheet and writes values in its place,
	// starting at A1. The sheet is created if it does not exist.
	ReplaceSheet(ctx context.Context, sheetName string, values [][]any) error
}

// Option configures the client.
type Option func(*apiClient)

// WithService overrides the sheets service, mainly for tests.
func WithService(svc *sheets.Service) Option {
	return func(c *apiClient) {
		c.svc = svc
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *apiClient) {
		c.limiter = l
	}
}

type apiClient struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
}

// NewClient creates a Sheets API client authenticated with a service
// account credentials file. The Sheets API quota is 60 writes per minute
// per user, so the default limiter stays just under one per second.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string, opts ...Option) (Client, error) {
	c := &apiClient{
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(0.9), 1),
	}
	for _, o := range opts {
		o(c)
	}

	if c.svc == nil {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
		if err != nil {
			return nil, eris.Wrap(err, "sheets: create service")
		}
		c.svc = svc
	}
	return c, nil
}

func (c *apiClient) ReplaceSheet(ctx context.Context, sheetName string, values [][]any) error {
	if err := c.ensureSheet(ctx, sheetName); err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit wait")
	}
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return eris.Wrapf(err, "sheets: clear %s", sheetName)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit wait")
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", sheetName), &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return eris.Wrapf(err, "sheets: update %s", sheetName)
	}
	return nil
}

// ensureSheet adds the named sheet when the spreadsheet does not already
// carry it.
func (c *apiClient) ensureSheet(ctx context.Context, sheetName string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit wait")
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return eris.Wrap(err, "sheets: get spreadsheet")
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheetName {
			return nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit wait")
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return eris.Wrapf(err, "sheets: add sheet %s", sheetName)
	}
	return nil
}
