//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/udon-shop-server/internal/model"
	repo "github.com/dtroode/udon-shop-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "udonshop_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/udonshop_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func makeUser(email string) model.User {
	now := time.Now().UTC()
	return model.User{
		ID:           uuid.New(),
		Name:         "テストユーザー",
		Email:        email,
		PasswordHash: "$2a$12$hash",
		Address:      "香川県高松市1-2-3",
		Phone:        "090-0000-0000",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func makeProductRow(name string, price int64, stock int) model.Product {
	now := time.Now().UTC()
	return model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "d",
		Price:       price,
		Stock:       stock,
		ImageURL:    "/images/x.jpg",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		u := makeUser("user@example.com")

		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		dup := makeUser(u.Email)
		_, err = ur.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrAlreadyExists)

		_, err = ur.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("product_repository", func(t *testing.T) {
		pr := repo.NewProductRepository(conn)
		p := makeProductRow("かけうどん", 800, 10)

		saved, err := pr.Create(ctx, p)
		require.NoError(t, err)
		require.Equal(t, p.ID, saved.ID)

		got, err := pr.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, p.Name, got.Name)

		newPrice := int64(900)
		updated, err := pr.Update(ctx, p.ID, model.ProductUpdate{Price: &newPrice})
		require.NoError(t, err)
		require.Equal(t, newPrice, updated.Price)
		require.Equal(t, p.Name, updated.Name)

		list, err := pr.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, list)

		require.NoError(t, pr.Delete(ctx, p.ID))
		_, err = pr.GetByID(ctx, p.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		require.ErrorIs(t, pr.Delete(ctx, uuid.New()), model.ErrNotFound)
	})

	t.Run("order_repository", func(t *testing.T) {
		or := repo.NewOrderRepository(conn)
		ur := repo.NewUserRepository(conn)
		pr := repo.NewProductRepository(conn)

		owner, err := ur.Create(ctx, makeUser("buyer@example.com"))
		require.NoError(t, err)
		product, err := pr.Create(ctx, makeProductRow("カレーうどん", 950, 5))
		require.NoError(t, err)

		order := model.Order{
			ID:         uuid.New(),
			UserID:     owner.ID,
			OrderDate:  time.Now().UTC(),
			TotalPrice: 1900,
			Status:     model.OrderStatusPending,
		}
		items := []model.OrderItem{
			{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  2,
				Price:     950,
			},
		}

		saved, err := or.Create(ctx, order, items)
		require.NoError(t, err)
		require.Equal(t, order.ID, saved.ID)

		got, err := or.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, order.TotalPrice, got.TotalPrice)

		gotItems, err := or.GetItemsByOrderID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, gotItems, 1)
		require.Equal(t, 2, gotItems[0].Quantity)

		byUser, err := or.GetByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)

		all, err := or.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)

		updated, err := or.UpdateStatus(ctx, order.ID, model.OrderStatusConfirmed)
		require.NoError(t, err)
		require.Equal(t, model.OrderStatusConfirmed, updated.Status)

		_, err = or.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestOrderRepository_CreateRollsBackOnBadItem(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	or := repo.NewOrderRepository(conn)
	ur := repo.NewUserRepository(conn)

	owner, err := ur.Create(ctx, makeUser("rollback@example.com"))
	require.NoError(t, err)

	order := model.Order{
		ID:         uuid.New(),
		UserID:     owner.ID,
		OrderDate:  time.Now().UTC(),
		TotalPrice: 1600,
		Status:     model.OrderStatusPending,
	}
	// Two items sharing an ID make the second insert fail, so the
	// whole order must roll back.
	itemID := uuid.New()
	items := []model.OrderItem{
		{
			ID:        itemID,
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Quantity:  1,
			Price:     800,
		},
		{
			ID:        itemID,
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Quantity:  1,
			Price:     800,
		},
	}

	_, err = or.Create(ctx, order, items)
	require.Error(t, err)

	_, err = or.GetByID(ctx, order.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}
