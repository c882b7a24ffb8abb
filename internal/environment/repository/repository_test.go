package repository_test

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

func testName(t *testing.T) valueobject.EnvironmentName {
	t.Helper()
	name, err := valueobject.NewEnvironmentName("e2e-dev")
	if err != nil {
		t.Fatalf("NewEnvironmentName: %v", err)
	}
	return name
}

func testEnvironment(t *testing.T) (valueobject.EnvironmentName, environment.Created) {
	t.Helper()
	name := testName(t)
	user, err := valueobject.NewUsername("torrust")
	if err != nil {
		t.Fatalf("NewUsername: %v", err)
	}
	port, err := valueobject.NewPort(22)
	if err != nil {
		t.Fatalf("NewPort: %v", err)
	}
	creds := environment.SSHCredentials{Username: user, PrivateKeyPath: "/k", PublicKeyPath: "/k.pub"}
	return name, environment.NewCreated(name, creds, port)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := repository.New(dir)
	name, created := testEnvironment(t)

	if err := repo.Save(name, created.ToAny()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	back, err := environment.TryIntoCreated(loaded)
	if err != nil {
		t.Fatalf("TryIntoCreated: %v", err)
	}
	if back.Name != created.Name {
		t.Fatalf("expected name to round trip, got %q", back.Name)
	}
}

func TestLoadMissingReturnsNotFoundError(t *testing.T) {
	dir := t.TempDir()
	repo := repository.New(dir)
	name := testName(t)

	_, err := repo.Load(name)
	var notFound *repository.NotFoundError
	if err == nil {
		t.Fatalf("expected NotFoundError, got nil")
	}
	if ne, ok := err.(*repository.NotFoundError); ok {
		notFound = ne
	} else {
		t.Fatalf("expected *repository.NotFoundError, got %T", err)
	}
	if notFound.Name != name.String() {
		t.Fatalf("expected error to name the environment")
	}
}

func TestExistsAndDelete(t *testing.T) {
	dir := t.TempDir()
	repo := repository.New(dir)
	name, created := testEnvironment(t)

	if repo.Exists(name) {
		t.Fatalf("expected environment to not exist yet")
	}
	if err := repo.Save(name, created.ToAny()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !repo.Exists(name) {
		t.Fatalf("expected environment to exist after save")
	}
	if err := repo.Delete(name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.Exists(name) {
		t.Fatalf("expected environment to be gone after delete")
	}
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	dir := t.TempDir()
	repo := repository.New(dir)
	name, created := testEnvironment(t)
	logger := logr.Discard()

	if err := repo.Save(name, created.ToAny()); err != nil {
		t.Fatalf("Save created: %v", err)
	}

	provisioning := created.StartProvisioning(logger)
	if err := repo.Save(name, provisioning.ToAny()); err != nil {
		t.Fatalf("Save provisioning: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := environment.TryIntoProvisioning(loaded); err != nil {
		t.Fatalf("expected latest state to be Provisioning: %v", err)
	}
}
