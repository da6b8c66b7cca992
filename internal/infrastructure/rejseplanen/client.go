// Package rejseplanen implements the station directory collaborator on top
// of the HAFAS JSON API exposed by rejseplanen.dk.
package rejseplanen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
)

const (
	apiVersion   = "1.24"
	apiExtension = "DK.11"

	locTypeStation = "S"

	// coordScale converts the integer coordinates the API uses.
	coordScale = 1_000_000
)

type client struct {
	httpClient *http.Client
	baseURL    string
	accessID   string
	lang       string
	logger     *zap.Logger
}

// NewClient creates a directory client for the Rejseplanen API.
func NewClient(cfg *config.DirectoryConfig, logger *zap.Logger) repository.DirectoryRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:  cfg.BaseURL,
		accessID: cfg.AccessID,
		lang:     cfg.Language,
		logger:   logger,
	}
}

// SearchStations looks stations up by name. Station names come back raw,
// municipality suffix included; normalization happens in the use case.
func (c *client) SearchStations(ctx context.Context, query string, maxResults int) ([]domain.Station, error) {
	// The API treats '?' as a wildcard; append one unless already present.
	searchQuery := query
	if !strings.HasSuffix(searchQuery, "?") {
		searchQuery += "?"
	}

	resp, err := c.call(ctx, svcRequest{
		Req: locMatchReq{
			Input: locMatchInput{
				Field: "S",
				Loc: locMatchName{
					Name: searchQuery,
					Type: "ALL",
					Dist: 1000,
				},
				MaxLoc: maxResults,
			},
		},
		Meth: "LocMatch",
		ID:   "1|1|",
	})
	if err != nil {
		return nil, err
	}

	if resp.Res.Match == nil {
		return nil, nil
	}
	return toStations(resp.Res.Match.LocL), nil
}

// NearbyStops returns stations within maxDistance meters of a point.
func (c *client) NearbyStops(ctx context.Context, lat, lng float64, maxDistance, maxResults int) ([]domain.Station, error) {
	resp, err := c.call(ctx, svcRequest{
		Req: locGeoPosReq{
			Ring: geoRing{
				CCrd: coordinate{
					X: int(math.Round(lng * coordScale)),
					Y: int(math.Round(lat * coordScale)),
				},
				MaxDist: maxDistance,
			},
			MaxLoc: maxResults,
		},
		Meth: "LocGeoPos",
		ID:   "1|2|",
	})
	if err != nil {
		return nil, err
	}

	return toStations(resp.Res.LocL), nil
}

// Departures returns the departure board for a station.
func (c *client) Departures(ctx context.Context, stationID string, maxDepartures int) ([]domain.Departure, error) {
	resp, err := c.call(ctx, svcRequest{
		Req: stationBoardReq{
			StbLoc: stationBoardLoc{
				LID: fmt.Sprintf("A=1@L=%s@", stationID),
			},
			Type:   "DEP",
			MaxJny: maxDepartures,
		},
		Meth: "StationBoard",
		ID:   "1|3|",
	})
	if err != nil {
		return nil, err
	}

	if resp.Res.Common == nil {
		return nil, nil
	}
	products := resp.Res.Common.ProdL

	departures := make([]domain.Departure, 0, len(resp.Res.JnyL))
	for _, jny := range resp.Res.JnyL {
		line := "Unknown"
		if jny.ProdX >= 0 && jny.ProdX < len(products) {
			line = products[jny.ProdX].Name
		}

		dep := domain.Departure{
			ID:            jny.JID,
			Line:          line,
			Direction:     jny.DirTxt,
			ScheduledTime: formatTime(jny.StbStop.DTimeS),
			IsDelayed:     jny.StbStop.DTimeR != "" && jny.StbStop.DTimeR != jny.StbStop.DTimeS,
		}
		if jny.StbStop.DTimeR != "" {
			dep.RealTime = formatTime(jny.StbStop.DTimeR)
		}
		if jny.StbStop.DPltfR != nil {
			dep.Platform = jny.StbStop.DPltfR.Txt
		} else if jny.StbStop.DPltfS != nil {
			dep.Platform = jny.StbStop.DPltfS.Txt
		}
		departures = append(departures, dep)
	}

	return departures, nil
}

// call performs a single-service request and unwraps the service result.
func (c *client) call(ctx context.Context, svc svcRequest) (*svcResult, error) {
	request := apiRequest{
		ID:   fmt.Sprintf("req_%d", time.Now().UnixMilli()),
		Ver:  apiVersion,
		Lang: c.lang,
		Auth: authSection{
			Type: "AID",
			AID:  c.accessID,
		},
		Client: clientInfo{
			ID:   "DK",
			Type: "WEB",
			Name: "rejseplanwebapp",
			L:    "vs_webapp",
			V:    "1.0.5",
		},
		Formatted: false,
		Ext:       apiExtension,
		SvcReqL:   []svcRequest{svc},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.Debug("Calling Rejseplanen API",
		zap.String("method", svc.Meth))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("Rejseplanen API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(raw)))
		return nil, fmt.Errorf("rejseplanen API error: status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Err != "OK" {
		c.logger.Error("Rejseplanen API returned non-OK code",
			zap.String("err", apiResp.Err),
			zap.String("err_txt", apiResp.ErrTxt))
		if apiResp.ErrTxt != "" {
			return nil, fmt.Errorf("rejseplanen API error: %s", apiResp.ErrTxt)
		}
		return nil, fmt.Errorf("rejseplanen API error: %s", apiResp.Err)
	}

	if len(apiResp.SvcResL) == 0 {
		return nil, fmt.Errorf("rejseplanen API returned no service results")
	}

	result := apiResp.SvcResL[0]
	if result.Err != "OK" {
		return nil, fmt.Errorf("rejseplanen service error: %s", result.Err)
	}

	return &result, nil
}

// toStations keeps only station locations and converts coordinates.
func toStations(locs []location) []domain.Station {
	stations := make([]domain.Station, 0, len(locs))
	for _, loc := range locs {
		if loc.Type != locTypeStation {
			continue
		}
		stations = append(stations, domain.Station{
			ID:         loc.ExtID,
			ExternalID: loc.ExtID,
			Name:       loc.Name,
			Coordinates: &domain.Coordinates{
				Lat: float64(loc.Crd.Y) / coordScale,
				Lng: float64(loc.Crd.X) / coordScale,
			},
		})
	}
	return stations
}

// formatTime converts HHMMSS departure times to HH:MM.
func formatTime(t string) string {
	if len(t) < 4 {
		return t
	}
	return t[:2] + ":" + t[2:4]
}
