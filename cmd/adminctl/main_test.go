package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/adminctl/internal/domain/model"
)

func TestApplyQueryProjectsJSONFields(t *testing.T) {
	endpoints := []model.MockEndpoint{
		{ID: "m1", Name: "orders", Enabled: true},
		{ID: "m2", Name: "inventory", Enabled: false},
	}

	result, err := applyQuery(endpoints, "[?enabled].name")
	require.NoError(t, err)

	names, ok := result.([]any)
	require.True(t, ok)
	require.Len(t, names, 1)
	assert.Equal(t, "orders", names[0])
}

func TestApplyQueryInvalidExpression(t *testing.T) {
	_, err := applyQuery(map[string]string{}, "[invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query")
}

func TestRenderMockEndpointTable(t *testing.T) {
	var buf bytes.Buffer
	endpoints := []model.MockEndpoint{
		{ID: "m1", Name: "orders", Path: "/orders", StatusCode: 200, ContentType: model.ContentTypeJSON, Enabled: true, DelayMs: 250},
	}

	require.NoError(t, renderMockEndpointTable(&buf, endpoints))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "/orders")
	assert.Contains(t, out, "250ms")
}

func TestRenderStatsTableAtCapacity(t *testing.T) {
	var buf bytes.Buffer
	stats := &model.EndpointStats{Total: 10, Enabled: 9, Disabled: 1, MaxEndpoints: 10, RemainingSlots: 0}

	require.NoError(t, renderStatsTable(&buf, stats))

	assert.Contains(t, buf.String(), "At capacity")
}

func TestResolveResponseBody(t *testing.T) {
	body, err := resolveResponseBody(`{"ok":true}`, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	_, err = resolveResponseBody("", "")
	require.Error(t, err)

	_, err = resolveResponseBody(`{"ok":true}`, "body.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestPromptPasswordTrimsInput(t *testing.T) {
	var out bytes.Buffer
	password, err := promptPassword(strings.NewReader("  hunter22  \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "hunter22", password)
	assert.Contains(t, out.String(), "Password:")
}

func TestPromptPasswordEmptyInput(t *testing.T) {
	var out bytes.Buffer
	_, err := promptPassword(strings.NewReader(""), &out)
	require.Error(t, err)
}
