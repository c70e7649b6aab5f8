package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"bachelorious/pkg/customerror"
)

var keyRx = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// FileStore writes each document to <dir>/<key>.json. Saves go through a
// temporary file and a rename so a crash never leaves half a document.
type FileStore struct {
	Dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, customerror.NewError("fileStore.NewFileStore", "file:"+dir, err.Error())
	}
	return &FileStore{Dir: dir}, nil
}

func (store *FileStore) path(key string) (string, error) {
	if !keyRx.MatchString(key) {
		return "", customerror.NewError("fileStore.path", store.Endpoint(), "invalid key "+key)
	}
	return filepath.Join(store.Dir, key+".json"), nil
}

func (store *FileStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := store.path(key)
	if err != nil {
		return nil, false, err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	value, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, customerror.NewError("fileStore.Load", store.Endpoint(), err.Error())
	}
	return value, true, nil
}

func (store *FileStore) Save(ctx context.Context, key string, value []byte) error {
	path, err := store.path(key)
	if err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	tmp, err := os.CreateTemp(store.Dir, key+".*.tmp")
	if err != nil {
		return customerror.NewError("fileStore.Save", store.Endpoint(), err.Error())
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return customerror.NewError("fileStore.Save", store.Endpoint(), err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return customerror.NewError("fileStore.Save", store.Endpoint(), err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return customerror.NewError("fileStore.Save", store.Endpoint(), err.Error())
	}
	return nil
}

func (store *FileStore) Remove(ctx context.Context, key string) error {
	path, err := store.path(key)
	if err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	err = os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return customerror.NewError("fileStore.Remove", store.Endpoint(), err.Error())
	}
	return nil
}

func (store *FileStore) Endpoint() string {
	return "file:" + store.Dir
}

func (store *FileStore) Close() error {
	return nil
}
