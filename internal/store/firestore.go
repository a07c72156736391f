package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/models"
)

const (
	tasksCollection = "tasks"
	usersCollection = "users"
)

// FirestoreStore implements TaskStore and UserStore on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

func (fs *FirestoreStore) Close() error {
	return fs.client.Close()
}

func (fs *FirestoreStore) Create(ctx context.Context, ownerID, title string) (*models.Task, error) {
	task := &models.Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
		CreatedAt: time.Now(),
	}

	_, err := fs.client.Collection(tasksCollection).Doc(task.ID).Set(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (fs *FirestoreStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	iter := fs.client.Collection(tasksCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var tasks []*models.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate tasks: %w", err)
		}

		var task models.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}

		tasks = append(tasks, &task)
	}

	return tasks, nil
}

func (fs *FirestoreStore) FindByID(ctx context.Context, taskID string) (*models.Task, error) {
	doc, err := fs.client.Collection(tasksCollection).Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task models.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

func (fs *FirestoreStore) Update(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error) {
	var updates []firestore.Update
	if patch.Completed != nil {
		updates = append(updates, firestore.Update{Path: "completed", Value: *patch.Completed})
	}
	if len(updates) == 0 {
		return fs.FindByID(ctx, taskID)
	}

	_, err := fs.client.Collection(tasksCollection).Doc(taskID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return fs.FindByID(ctx, taskID)
}

func (fs *FirestoreStore) DeleteByID(ctx context.Context, taskID string) error {
	// Firestore deletes are no-ops on missing documents, so check existence
	// first to honor the NotFound contract.
	if _, err := fs.FindByID(ctx, taskID); err != nil {
		return err
	}

	if _, err := fs.client.Collection(tasksCollection).Doc(taskID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (fs *FirestoreStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := fs.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (fs *FirestoreStore) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	doc, err := fs.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (fs *FirestoreStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := fs.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (fs *FirestoreStore) UpdateUser(ctx context.Context, userID string, patch UserPatch) (*models.User, error) {
	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		updates = append(updates, firestore.Update{Path: "email", Value: *patch.Email})
	}
	if len(updates) == 0 {
		return fs.FindUserByID(ctx, userID)
	}

	_, err := fs.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return fs.FindUserByID(ctx, userID)
}
