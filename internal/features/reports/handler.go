package reports

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/features/media"
	"github.com/xyz-asif/foundit/internal/pkg/response"
)

// Submitter is the part of Service the handler needs
type Submitter interface {
	Submit(ctx context.Context, form SubmitForm, imageRef string) (*Report, error)
}

type Handler struct {
	service    Submitter
	stager     *media.Stager
	identities IdentityProvider
}

func NewHandler(service Submitter, stager *media.Stager, identities IdentityProvider) *Handler {
	return &Handler{
		service:    service,
		stager:     stager,
		identities: identities,
	}
}

// @Summary Report a found item
// @Description Multipart form with an optional "image" file, or a JSON body without image
// @Tags reports
// @Accept multipart/form-data,json
// @Produce json
// @Security BearerAuth
// @Param itemName formData string true "Item name"
// @Param foundLocation formData string true "Where the item was found"
// @Param retrieveLocation formData string true "Where the item can be retrieved"
// @Param details formData string false "Additional details"
// @Param image formData file false "Photo of the item"
// @Success 201 {object} response.SuccessResponse{data=Report}
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	var form SubmitForm
	imageRef := ""

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&form); err != nil {
			response.BadRequest(c, "Invalid form data", "INVALID_FORM")
			return
		}

		header, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// no photo attached
		case err != nil:
			response.BadRequest(c, "Invalid image upload", "INVALID_FILE")
			return
		default:
			path, cleanup, err := h.stager.Stage(header)
			if err != nil {
				if errors.Is(err, media.ErrUnsupportedImage) || errors.Is(err, media.ErrImageTooLarge) {
					response.ValidationError(c, err.Error(), "INVALID_FILE")
					return
				}
				response.InternalServerError(c, "Failed to receive image", "STAGING_FAILED")
				return
			}
			// the staged copy is only needed until Submit returns
			defer cleanup()
			imageRef = path
		}
	} else if err := c.ShouldBindJSON(&form); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.service.Submit(c.Request.Context(), form, imageRef)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Created(c, report)
}

// @Summary Reporter identity
// @Description The identity the caller is signed in as and the name their reports will carry
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=MeResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /reports/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	id, ok := h.identities.CurrentIdentity(c.Request.Context())
	if !ok {
		response.Unauthorized(c, "User not authenticated", "AUTH_REQUIRED")
		return
	}

	response.Success(c, MeResponse{
		Subject:      id.Subject,
		Provider:     id.Provider,
		ReporterName: ReporterName(id),
	})
}
