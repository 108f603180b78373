package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tianguis/internal/common"
	"tianguis/internal/models"
	"tianguis/internal/repositories"

	"github.com/google/uuid"
)

const maxMensajeLength = 500

// InterestService records buyer interest and notifies the seller. The
// notification is fire-and-forget: a send failure is logged, never returned.
type InterestService interface {
	Create(ctx context.Context, listingID, buyerID uuid.UUID, mensaje *string) (*models.Interest, error)
	ListReceived(ctx context.Context, vendedorID uuid.UUID) ([]*models.Interest, error)
	ListSent(ctx context.Context, usuarioID uuid.UUID) ([]*models.Interest, error)
	MarkRead(ctx context.Context, interestID, vendedorID uuid.UUID) (*models.Interest, error)
}

type interestService struct {
	interestRepo    repositories.InterestRepository
	listingRepo     repositories.ListingRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
	frontendURL     string
}

func NewInterestService(interestRepo repositories.InterestRepository, listingRepo repositories.ListingRepository, userRepo repositories.UserRepository, notificationSvc NotificationService, frontendURL string) InterestService {
	return &interestService{
		interestRepo:    interestRepo,
		listingRepo:     listingRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		frontendURL:     frontendURL,
	}
}

func (s *interestService) Create(ctx context.Context, listingID, buyerID uuid.UUID, mensaje *string) (*models.Interest, error) {
	if mensaje != nil && len(*mensaje) > maxMensajeLength {
		return nil, common.NewValidationError("mensaje", fmt.Sprintf("el mensaje no puede exceder %d caracteres", maxMensajeLength))
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("anuncio")
		}
		return nil, err
	}
	if !listing.Activo {
		return nil, common.ErrListingInactive
	}
	if listing.UsuarioID == buyerID {
		return nil, common.ErrSelfInterest
	}

	interest := &models.Interest{
		ID:                  uuid.New(),
		ListingID:           listing.ID,
		UsuarioInteresadoID: buyerID,
		VendedorID:          listing.UsuarioID,
		Mensaje:             mensaje,
	}

	// The composite unique index resolves concurrent duplicates; no
	// pre-check.
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ErrInterestExists
		}
		return nil, err
	}

	s.notifySeller(ctx, listing, interest)

	return interest, nil
}

// notifySeller delivers the seller email asynchronously. The contact data is
// loaded before spawning so the goroutine owns everything it touches.
func (s *interestService) notifySeller(ctx context.Context, listing *models.Listing, interest *models.Interest) {
	seller, err := s.userRepo.GetByID(ctx, listing.UsuarioID)
	if err != nil {
		log.Printf("failed to load seller %s for notification: %v", listing.UsuarioID, err)
		return
	}
	buyer, err := s.userRepo.GetByID(ctx, interest.UsuarioInteresadoID)
	if err != nil {
		log.Printf("failed to load buyer %s for notification: %v", interest.UsuarioInteresadoID, err)
		return
	}

	notification := &InterestNotification{
		VendedorEmail:      seller.Email,
		VendedorNombre:     displayName(seller),
		InteresadoNombre:   displayName(buyer),
		InteresadoEmail:    buyer.Email,
		InteresadoTelefono: stringValue(buyer.Telefono),
		ListingTitulo:      listing.Titulo,
		ListingURL:         fmt.Sprintf("%s/listings/%s", s.frontendURL, listing.ID),
		Mensaje:            stringValue(interest.Mensaje),
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notificationSvc.SendInterestNotification(sendCtx, notification); err != nil {
			log.Printf("failed to send interest notification for listing %s: %v", listing.ID, err)
		}
	}()
}

func displayName(u *models.User) string {
	if u.Nombre != nil && *u.Nombre != "" {
		return *u.Nombre
	}
	return "Usuario"
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *interestService) ListReceived(ctx context.Context, vendedorID uuid.UUID) ([]*models.Interest, error) {
	return s.interestRepo.ListByVendedor(ctx, vendedorID)
}

func (s *interestService) ListSent(ctx context.Context, usuarioID uuid.UUID) ([]*models.Interest, error) {
	return s.interestRepo.ListByInteresado(ctx, usuarioID)
}

func (s *interestService) MarkRead(ctx context.Context, interestID, vendedorID uuid.UUID) (*models.Interest, error) {
	interest, err := s.interestRepo.GetByID(ctx, interestID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("interés")
		}
		return nil, err
	}
	if interest.VendedorID != vendedorID {
		return nil, common.NewForbidden("no tienes permiso para marcar este interés como leído")
	}
	if err := s.interestRepo.MarkLeido(ctx, interestID); err != nil {
		return nil, err
	}
	interest.Leido = true
	return interest, nil
}
