package handler

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/pkg/validator"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/usecase/dto"
)

// DebugHandler - отладочные страницы
type DebugHandler struct {
	coverageUC *usecase.CoverageUseCase
	logger     *zap.Logger
}

func NewDebugHandler(coverageUC *usecase.CoverageUseCase, logger *zap.Logger) *DebugHandler {
	return &DebugHandler{
		coverageUC: coverageUC,
		logger:     logger,
	}
}

// Coverage godoc
// @Summary Покрытие круга поиска geohash-ячейками
// @Description HTML-график: ячейки диапазонов, граница круга и центр. С format=json отдаёт данные.
// @Tags Debug
// @Produce html
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius_m query number false "Радиус в метрах"
// @Param format query string false "html | json" default(html)
// @Success 200 {string} string "HTML"
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/debug/coverage [get]
func (h *DebugHandler) Coverage(c *fiber.Ctx) error {
	var req dto.CoverageRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	coverage, err := h.coverageUC.Coverage(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	if c.Query("format") == "json" {
		return utils.SendSuccess(c, coverage, &utils.Meta{Total: len(coverage.Cells)})
	}

	var buf bytes.Buffer
	if err := coverageChart(coverage).Render(&buf); err != nil {
		h.logger.Error("Failed to render coverage chart", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer.Wrap(err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func coverageChart(cov *dto.CoverageResponse) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Geohash coverage",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Geohash coverage",
			Subtitle: fmt.Sprintf("%.5f, %.5f r=%.0fm, %d ranges, %d cells", cov.Center.Lat, cov.Center.Lon, cov.RadiusM, len(cov.Ranges), len(cov.Cells)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", Type: "value", Scale: opts.Bool(true)}),
	)

	corners := make([]opts.ScatterData, 0, len(cov.Cells)*4)
	for _, cell := range cov.Cells {
		for _, p := range [][2]float64{
			{cell.MinLon, cell.MinLat},
			{cell.MinLon, cell.MaxLat},
			{cell.MaxLon, cell.MaxLat},
			{cell.MaxLon, cell.MinLat},
		} {
			corners = append(corners, opts.ScatterData{Name: cell.Hash, Value: []float64{p[0], p[1]}, SymbolSize: 4})
		}
	}

	boundary := make([]opts.ScatterData, 0, len(cov.Boundary))
	for _, p := range cov.Boundary {
		boundary = append(boundary, opts.ScatterData{Value: []float64{p.Lon, p.Lat}, SymbolSize: 3})
	}

	scatter.AddSeries("cells", corners).
		AddSeries("radius", boundary).
		AddSeries("center", []opts.ScatterData{{
			Name:       "center",
			Value:      []float64{cov.Center.Lon, cov.Center.Lat},
			SymbolSize: 10,
		}})

	return scatter
}
