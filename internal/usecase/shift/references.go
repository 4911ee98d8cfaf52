package shift

import (
	"context"
	"time"

	clientDomain "github.com/BruksfildServices01/shift-scheduler/internal/domain/client"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type references struct {
	client  *models.Client
	service *models.Service
}

// loadReferences checks that every id of a shift points to an existing row.
// Deleted clients cannot receive new bookings.
func loadReferences(
	ctx context.Context,
	repo domain.Repository,
	clientID, userID, serviceID uint,
) (*references, error) {

	service, err := repo.GetService(ctx, serviceID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.Validation("service_id", "El servicio seleccionado no existe.")
		}
		return nil, err
	}

	client, err := repo.GetClient(ctx, clientID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.Validation("client_id", "El cliente seleccionado no existe.")
		}
		return nil, err
	}
	if !clientDomain.IsActive(client) {
		return nil, httperr.Validation("client_id", "El cliente seleccionado fue dado de baja.")
	}

	ok, err := repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.Validation("user_id", "El usuario seleccionado no existe.")
	}

	return &references{client: client, service: service}, nil
}

func assertNoConflict(
	ctx context.Context,
	repo domain.Repository,
	userID uint,
	at time.Time,
	excludeID uint,
) error {

	from, to := domain.Window(at)
	count, err := repo.CountActiveInWindow(ctx, userID, from, to, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict()
	}
	return nil
}
