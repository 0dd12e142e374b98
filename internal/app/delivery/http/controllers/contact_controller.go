package controllers

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ContactController struct {
	Log            *zap.Logger
	ContactUsecase contracts.ContactUsecase
	InternalConfig *config.InternalConfig
}

func NewContactController(logger *zap.Logger, contactUsecase contracts.ContactUsecase, internalConfig *config.InternalConfig) *ContactController {
	return &ContactController{
		Log:            logger,
		ContactUsecase: contactUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ContactForm)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if request.Kind == "" {
		request.Kind = constvars.ContactKindContact
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	err = ctrl.ContactUsecase.Send(ctx, optionalSession(r), request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ContactSentSuccessMessage, nil)
}
