package main

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/postgres"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
)

// stores repositorios de la aplicación según STORAGE_DRIVER.
type stores struct {
	profiles      repository.ProfileRepository
	payments      repository.PaymentRepository
	reviews       repository.LocationVerificationRepository
	subscriptions repository.SubscriptionRepository
	packages      repository.SubscriptionPackageRepository
	verifications repository.VerificationRepository
	staff         repository.StaffRepository
	categories    repository.CategoryRepository
	industries    repository.IndustryRepository
	commissions   repository.CommissionRepository
	pickupCenters repository.PickupCenterRepository
	codes         repository.OneTimeCodeRepository
	regionFees    repository.RegionFeeRepository
	tx            payment.TxRunner
	close         func()
}

func (s *stores) paymentRepos() payment.Repos {
	return payment.Repos{
		Payments:      s.payments,
		Profiles:      s.profiles,
		Reviews:       s.reviews,
		Subscriptions: s.subscriptions,
		Packages:      s.packages,
	}
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		profiles:      postgres.NewProfileRepository(pool),
		payments:      postgres.NewPaymentRepository(pool),
		reviews:       postgres.NewLocationVerificationRepository(pool),
		subscriptions: postgres.NewSubscriptionRepository(pool),
		packages:      postgres.NewPackageRepository(pool),
		verifications: postgres.NewVerificationRepository(pool),
		staff:         postgres.NewStaffRepository(pool),
		categories:    postgres.NewCategoryRepository(pool),
		industries:    postgres.NewIndustryRepository(pool),
		commissions:   postgres.NewCommissionRepository(pool),
		pickupCenters: postgres.NewPickupCenterRepository(pool),
		codes:         postgres.NewOneTimeCodeRepository(pool),
		regionFees:    postgres.NewRegionFeeRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}

// openMemory todo en proceso; se pierde al reiniciar. Precarga los mismos agentes que 001_init.sql.
func openMemory() *stores {
	s := &stores{
		profiles:      memory.NewProfileRepository(),
		payments:      memory.NewPaymentRepository(),
		reviews:       memory.NewLocationVerificationRepository(),
		subscriptions: memory.NewSubscriptionRepository(),
		packages:      memory.NewPackageRepository(),
		verifications: memory.NewVerificationRepository(),
		staff:         memory.NewStaffRepository(memory.DefaultStaff()...),
		categories:    memory.NewCategoryRepository(),
		industries:    memory.NewIndustryRepository(),
		commissions:   memory.NewCommissionRepository(),
		pickupCenters: memory.NewPickupCenterRepository(),
		codes:         memory.NewOneTimeCodeRepository(),
		regionFees:    memory.NewRegionFeeRepository(),
		close:         func() {},
	}
	s.tx = memory.NewTxRunner(s.paymentRepos())
	return s
}
