package services

import "errors"

var (
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	ErrAssetRemoval     = errors.New("image removal failed")
	ErrRowRemoval       = errors.New("entry removal failed")
	ErrNoVideos         = errors.New("no videos")
)
