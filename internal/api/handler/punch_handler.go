package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/service"
	apperrors "github.com/asim5800/attendance-app/pkg/errors"
	"github.com/asim5800/attendance-app/pkg/response"
)

const (
	msgInvalidJSON        = "Invalid JSON."
	msgInvalidForm        = "Invalid form data."
	msgInvalidCoordinates = "Invalid coordinates."
	msgPunchRecorded      = "Punch recorded successfully."
)

var (
	errInvalidCoordinate = errors.New("invalid coordinate")
	errMalformedJSON     = errors.New("malformed json body")
)

// PunchHandler 打卡模块 HTTP 处理器
type PunchHandler struct {
	attendanceSvc service.AttendanceService
}

// NewPunchHandler 创建 PunchHandler
func NewPunchHandler(attendanceSvc service.AttendanceService) *PunchHandler {
	return &PunchHandler{attendanceSvc: attendanceSvc}
}

// Punch 记录一次打卡
// POST /punch
//
// 表单编码按表单解析，其余一律按 JSON 解析
func (h *PunchHandler) Punch(c *gin.Context) {
	var req dto.PunchRequest
	switch strings.ToLower(c.ContentType()) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := bindPunchForm(c, &req); err != nil {
			if errors.Is(err, errInvalidCoordinate) {
				response.BadRequest(c, msgInvalidCoordinates)
				return
			}
			badRequestOrTooLarge(c, err, msgInvalidForm)
			return
		}
	default:
		if err := bindPunchJSON(c, &req); err != nil {
			badRequestOrTooLarge(c, err, msgInvalidJSON)
			return
		}
	}

	if _, err := h.attendanceSvc.Punch(c.Request.Context(), &req); err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			response.BadRequest(c, ve.Message)
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, msgPunchRecorded)
}

// bindPunchJSON 请求体必须恰好是一个 JSON 值，尾随内容视为非法
func bindPunchJSON(c *gin.Context, req *dto.PunchRequest) error {
	if c.Request.Body == nil {
		return errMalformedJSON
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return errMalformedJSON
	}
	return binding.JSON.BindBody(body, req)
}

func bindPunchForm(c *gin.Context, req *dto.PunchRequest) error {
	if err := c.Request.ParseMultipartForm(32 << 10); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	req.EmployeeID = c.PostForm("employee_id")
	req.Action = c.PostForm("action")

	var err error
	if req.Latitude, err = formCoordinate(c, "latitude"); err != nil {
		return err
	}
	if req.Longitude, err = formCoordinate(c, "longitude"); err != nil {
		return err
	}
	return nil
}

// formCoordinate 空值视为未提供
func formCoordinate(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errInvalidCoordinate
	}
	return &v, nil
}
