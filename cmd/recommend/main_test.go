package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bookrec/internal/recommend"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc(t *testing.T, res recommend.Result, err error) *recommend.Service {
	ctrl := gomock.NewController(t)
	f := recommend.NewMockFetcher(ctrl)
	f.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(res, err)
	return recommend.NewService(f, nil, nil)
}

func TestRun_PrintsRankedList(t *testing.T) {
	svc := newSvc(t, recommend.Result{Books: []recommend.Book{
		{Title: "Low", Author: "A", Rating: 1},
		{Title: "High", Author: "B", Rating: 4.5},
	}}, nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, svc, "Biography", 10, false))

	assert.Equal(t, "Top 2 books in genre 'Biography':\n1. High by B - Rating: 4.5\n2. Low by A - Rating: 1.0\n", out.String())
}

func TestRun_JSON(t *testing.T) {
	svc := newSvc(t, recommend.Result{Books: []recommend.Book{{Title: "Only", Rating: 2}}}, nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, svc, "Art", 1, true))

	var books []recommend.Book
	require.NoError(t, json.Unmarshal(out.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Only", books[0].Title)
}

func TestRun_Empty(t *testing.T) {
	svc := newSvc(t, recommend.Result{Exhausted: true}, nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, svc, "Nothing", 10, false))
	assert.Equal(t, "No books fetched for genre 'Nothing'.\n", out.String())
}

func TestRun_TransportFailure(t *testing.T) {
	svc := newSvc(t, recommend.Result{}, &recommend.TransportError{Err: errors.New("refused")})

	err := run(context.Background(), &bytes.Buffer{}, svc, "Biography", 10, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, recommend.ErrTransport)
}

func TestRun_PartialFailureStillRanks(t *testing.T) {
	svc := newSvc(t, recommend.Result{Books: []recommend.Book{{Title: "Kept", Rating: 3}}},
		&recommend.TransportError{StartIndex: 40, Err: errors.New("reset")})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, svc, "Biography", 10, false))
	assert.Contains(t, out.String(), "warning: catalog failed part way")
	assert.Contains(t, out.String(), "1. Kept")
}

func TestRootCmd_RequiresGenre(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
