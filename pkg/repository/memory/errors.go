package memory

import "github.com/secmon-lab/airegister/pkg/domain/interfaces"

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrDuplicateName = interfaces.ErrDuplicateName
)
