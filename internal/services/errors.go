package services

import "errors"

var (
	ErrProjectNotFound    = errors.New("Projeto não encontrado")
	ErrNothingToAnalyze   = errors.New("Adicione pelo menos um documento ou vídeo para análise")
	ErrInvalidFlowchart   = errors.New("Fluxograma inválido ou vazio")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyPR            = errors.New("conteúdo vazio")
)
