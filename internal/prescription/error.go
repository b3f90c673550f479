package prescription

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyFile     = errors.New("no file selected")
	ErrFileTooLarge  = errors.New("file exceeds upload limit")
	ErrInvalidStatus = errors.New("invalid prescription status")

	// -- Resource State --
	ErrPrescriptionNotFound = errors.New("prescription not found")

	// -- Database & Operation Failures --
	ErrFailedStoreFile = errors.New("failed to store prescription file")
	ErrFailedSave      = errors.New("failed to save prescription")
)
