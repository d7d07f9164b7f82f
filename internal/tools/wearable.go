package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// RegisterDeviceTool adds a wearable to the user's account.
type RegisterDeviceTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *RegisterDeviceTool) Definition() mcp.Tool {
	return mcp.NewTool("register_wearable_device",
		withIdentity(
			mcp.WithDescription("Register a wearable device for the user. Device ids are unique per user."),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Stable device identifier, e.g. serial number.")),
			mcp.WithString("device_type", mcp.Required(), mcp.Description("Device kind, e.g. smartwatch, ring, band.")),
			mcp.WithString("device_name", mcp.Description("Human-readable name.")),
		)...)
}

func (t *RegisterDeviceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	deviceID := req.GetString("device_id", "")
	if deviceID == "" {
		return errResult("validation_error", "device_id is required")
	}

	d, err := t.Store.RegisterDevice(ctx, ac.UserID, store.Device{
		DeviceID:   deviceID,
		DeviceType: req.GetString("device_type", ""),
		DeviceName: req.GetString("device_name", ""),
	})
	if errors.Is(err, store.ErrDeviceExists) {
		return errResult("conflict", fmt.Sprintf("device %q is already registered", deviceID))
	}
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"device":  d,
	})
}

// ListDevicesTool lists the user's wearables.
type ListDevicesTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *ListDevicesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wearable_devices",
		withIdentity(
			mcp.WithDescription("List the user's registered wearable devices."),
		)...)
}

func (t *ListDevicesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	devices, err := t.Store.ListDevices(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"devices": devices,
		"count":   len(devices),
	})
}

// IngestWearableTool stores one day of metrics from a device.
type IngestWearableTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *IngestWearableTool) Definition() mcp.Tool {
	return mcp.NewTool("ingest_wearable_data",
		withIdentity(
			mcp.WithDescription("Store one day of wearable metrics for a device. Replaces any earlier reading for that date."),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device the data came from.")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date YYYY-MM-DD.")),
			mcp.WithString("metrics_json", mcp.Required(),
				mcp.Description("JSON object with sleep, heart_rate, activity, stress_recovery and environment groups.")),
		)...)
}

func (t *IngestWearableTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	date := req.GetString("date", "")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errResult("validation_error", fmt.Sprintf("date %q is not YYYY-MM-DD", date))
	}

	var metrics store.ReadingMetrics
	if err := json.Unmarshal([]byte(req.GetString("metrics_json", "")), &metrics); err != nil {
		return errResult("validation_error", fmt.Sprintf("metrics_json is not valid: %v", err))
	}

	reading := store.Reading{
		DeviceID: req.GetString("device_id", ""),
		Date:     date,
		Metrics:  metrics,
	}
	if err := t.Store.UpsertReading(ctx, ac.UserID, reading); err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":   true,
		"device_id": reading.DeviceID,
		"date":      date,
	})
}

// GetWearableDataTool fetches stored metrics for a date.
type GetWearableDataTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *GetWearableDataTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wearable_data",
		withIdentity(
			mcp.WithDescription("Get stored wearable metrics for a date. Defaults to the most recent reading."),
			mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD. Omit for the latest reading.")),
		)...)
}

func (t *GetWearableDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	var reading store.Reading
	if date := req.GetString("date", ""); date != "" {
		reading, err = t.Store.ReadingByDate(ctx, ac.UserID, date)
	} else {
		reading, err = t.Store.LatestReading(ctx, ac.UserID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return errResult("not_found", "no wearable data stored for that date")
	}
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"reading": reading,
	})
}
