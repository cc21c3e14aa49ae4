// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	documentPath = "/api/collections/{collection}/documents/{id}"
	changesPath  = "/api/changes"
	snapshotPath = "/api/snapshots"
)

type httpRemoteClient struct {
	client *utils.HTTPClient

	baseURL string
	token   string
	timeout time.Duration

	logger *logger.Logger
}

// NewHTTPRemoteClient constructs an HTTP/REST implementation of
// [RemoteDocumentClient]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL, request timeout and bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteDocumentClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	token := strings.TrimSpace(adapterCfg.Token)
	client := utils.NewHTTPClient(
		utils.WithBaseURL(baseURL),
		utils.WithTimeout(adapterCfg.RequestTimeout),
		utils.WithAuthToken(token),
	)

	return &httpRemoteClient{
		client:  client,
		baseURL: baseURL,
		token:   token,
		timeout: adapterCfg.RequestTimeout,
		logger:  logger.WithComponent("remote-client"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Save implements [RemoteDocumentClient]. It PUTs doc to
// PUT /api/collections/{collection}/documents/{id} with the session header.
func (h *httpRemoteClient) Save(ctx context.Context, collection string, doc models.Document, sessionID string) error {
	id := doc.RecordID()
	if id == "" {
		return ErrMissingDocumentID
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(models.HeaderSessionID, sessionID).
		SetPathParams(map[string]string{"collection": collection, "id": id}).
		SetBody(doc).
		Put(documentPath)
	if err != nil {
		return fmt.Errorf("save request: %w", err)
	}

	return mapHTTPError(resp)
}

// Delete implements [RemoteDocumentClient]. A 404 from
// DELETE /api/collections/{collection}/documents/{id} counts as success.
func (h *httpRemoteClient) Delete(ctx context.Context, collection, id, sessionID string) error {
	if id == "" {
		return ErrMissingDocumentID
	}

	resp, err := h.authedRequest(ctx).
		SetHeader(models.HeaderSessionID, sessionID).
		SetPathParams(map[string]string{"collection": collection, "id": id}).
		Delete(documentPath)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	if err = mapHTTPError(resp); errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ChangesSince implements [RemoteDocumentClient] via GET /api/changes.
func (h *httpRemoteClient) ChangesSince(ctx context.Context, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error) {
	var changes models.ChangeSet

	req := h.authedRequest(ctx).SetResult(&changes)
	if since != nil {
		req.SetQueryParam(models.QuerySince, since.At.UTC().Format(time.RFC3339Nano))
		if since.Collection != "" {
			req.SetQueryParam(models.QueryAfterCollection, since.Collection)
		}
		if since.ID != "" {
			req.SetQueryParam(models.QueryAfterID, since.ID)
		}
	}
	if len(scope.Collections) > 0 {
		req.SetQueryParam(models.QueryCollections, strings.Join(scope.Collections, ","))
	}

	resp, err := req.Get(changesPath)
	if err != nil {
		return models.ChangeSet{}, fmt.Errorf("changes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangeSet{}, err
	}

	changes.Length = len(changes.Changes)
	return changes, nil
}

// PushSnapshot implements [RemoteDocumentClient]. The snapshot is encoded and
// checksummed locally, then POSTed to /api/snapshots in one request, so the
// archive either receives all of it or nothing.
func (h *httpRemoteClient) PushSnapshot(ctx context.Context, snapshot models.Snapshot, onProgress models.ProgressFunc) (models.VersionMeta, error) {
	const totalSteps = 3
	report := func(step int, label string) {
		if onProgress != nil {
			onProgress(models.Progress{
				Step:       step,
				TotalSteps: totalSteps,
				Label:      label,
				Percent:    float64(step) / totalSteps * 100,
			})
		}
	}

	report(1, "encoding snapshot")
	payload, checksum, err := encodeSnapshot(snapshot)
	if err != nil {
		return models.VersionMeta{}, err
	}

	report(2, "uploading snapshot")
	var meta models.VersionMeta
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", models.ContentTypeSnappy).
		SetHeader(models.HeaderSnapshotChecksum, checksum).
		SetBody(payload).
		SetResult(&meta).
		Post(snapshotPath)
	if err != nil {
		return models.VersionMeta{}, fmt.Errorf("push snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionMeta{}, err
	}

	report(3, "snapshot archived")
	return meta, nil
}

// PullSnapshot implements [RemoteDocumentClient] via
// GET /api/snapshots/latest.
func (h *httpRemoteClient) PullSnapshot(ctx context.Context) (models.Snapshot, error) {
	return h.pullSnapshot(ctx, "latest")
}

// PullVersion implements [RemoteDocumentClient] via
// GET /api/snapshots/{version}.
func (h *httpRemoteClient) PullVersion(ctx context.Context, versionID string) (models.Snapshot, error) {
	if strings.TrimSpace(versionID) == "" {
		return models.Snapshot{}, ErrEmptyVersionID
	}
	return h.pullSnapshot(ctx, versionID)
}

func (h *httpRemoteClient) pullSnapshot(ctx context.Context, version string) (models.Snapshot, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", models.ContentTypeSnappy).
		SetPathParam("version", version).
		Get(snapshotPath + "/{version}")
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("pull snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Snapshot{}, err
	}

	snapshot, err := decodeSnapshot(resp.Body(), resp.Header().Get(models.HeaderSnapshotChecksum))
	if err != nil {
		return models.Snapshot{}, err
	}
	applyVersionHeaders(&snapshot, resp.Header().Get(models.HeaderSnapshotVersion), resp.Header().Get(models.HeaderSnapshotCreatedAt))

	return snapshot, nil
}

// ListVersions implements [RemoteDocumentClient] via GET /api/snapshots.
func (h *httpRemoteClient) ListVersions(ctx context.Context) ([]models.VersionMeta, error) {
	var versions []models.VersionMeta

	resp, err := h.authedRequest(ctx).
		SetResult(&versions).
		Get(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("list versions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return versions, nil
}

// DeleteVersion implements [RemoteDocumentClient] via
// DELETE /api/snapshots/{version}.
func (h *httpRemoteClient) DeleteVersion(ctx context.Context, versionID string) error {
	if strings.TrimSpace(versionID) == "" {
		return ErrEmptyVersionID
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("version", versionID).
		Delete(snapshotPath + "/{version}")
	if err != nil {
		return fmt.Errorf("delete version request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteClient) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}
