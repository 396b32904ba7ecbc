package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/content"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
)

type DraftService interface {
	GetDraft(ctx context.Context, userID uint64) (*dto.DraftDTO, error)
	SaveDraft(ctx context.Context, userID uint64, req *dto.DraftDTO) error
	ClearDraft(ctx context.Context, userID uint64) error

	InsertBlock(ctx context.Context, userID uint64, blockType string) (*dto.BlockInsertResultDTO, error)
	UpdateBlock(ctx context.Context, userID uint64, blockID string, raw []byte) error
	ReorderBlock(ctx context.Context, userID uint64, blockID string, newIndex int) error
	RemoveBlock(ctx context.Context, userID uint64, blockID string) error
}

type draftServiceImpl struct {
	draftRepo repository.DraftRepo
}

func NewDraftService(draftRepo repository.DraftRepo) DraftService {
	return &draftServiceImpl{draftRepo: draftRepo}
}

func (s *draftServiceImpl) GetDraft(ctx context.Context, userID uint64) (*dto.DraftDTO, error) {
	draft, err := s.draftRepo.LoadDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = content.NewDraft()
	}

	out := &dto.DraftDTO{
		Title:            draft.Title,
		Slug:             draft.Slug,
		ShortDescription: draft.ShortDescription,
		Tags:             draft.Tags,
		Blocks:           make([]dto.BlockDTO, 0, len(draft.Blocks)),
		Data:             make(map[string]json.RawMessage, len(draft.Data)),
	}
	if draft.ThumbnailKey != "" {
		key := draft.ThumbnailKey
		out.ThumbnailKey = &key
	}

	for _, block := range draft.Blocks {
		out.Blocks = append(out.Blocks, dto.BlockDTO{ID: block.ID, Type: string(block.Type)})
		if payload, ok := draft.Data[block.ID]; ok {
			raw, err := json.Marshal(payload)
			if err != nil {
				continue
			}
			out.Data[block.ID] = raw
		}
	}
	return out, nil
}

// SaveDraft 整体覆盖草稿快照
func (s *draftServiceImpl) SaveDraft(ctx context.Context, userID uint64, req *dto.DraftDTO) error {
	draft := content.NewDraft()
	draft.Title = req.Title
	draft.Slug = req.Slug
	draft.ShortDescription = req.ShortDescription
	draft.Tags = req.Tags
	if req.ThumbnailKey != nil {
		draft.ThumbnailKey = *req.ThumbnailKey
	}

	for _, block := range req.Blocks {
		t := content.BlockType(block.Type)
		raw, ok := req.Data[block.ID]
		if !ok {
			continue
		}
		payload, err := content.DecodePayload(t, raw)
		if err != nil {
			return err
		}
		draft.Blocks = append(draft.Blocks, content.Block{ID: block.ID, Type: t})
		draft.Data[block.ID] = payload
	}

	return s.draftRepo.SaveDraft(ctx, userID, draft)
}

func (s *draftServiceImpl) ClearDraft(ctx context.Context, userID uint64) error {
	return s.draftRepo.ClearDraft(ctx, userID)
}

func (s *draftServiceImpl) InsertBlock(ctx context.Context, userID uint64, blockType string) (*dto.BlockInsertResultDTO, error) {
	var result *dto.BlockInsertResultDTO
	err := s.mutate(ctx, userID, func(draft *content.Draft) error {
		blockID, err := draft.InsertBlock(content.BlockType(blockType))
		if err != nil {
			return err
		}
		result = &dto.BlockInsertResultDTO{BlockID: blockID}
		return nil
	})
	return result, err
}

func (s *draftServiceImpl) UpdateBlock(ctx context.Context, userID uint64, blockID string, raw []byte) error {
	return s.mutate(ctx, userID, func(draft *content.Draft) error {
		idx := -1
		for i, b := range draft.Blocks {
			if b.ID == blockID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return content.ErrBlockNotFound
		}

		payload, err := content.DecodePayload(draft.Blocks[idx].Type, raw)
		if err != nil {
			return err
		}
		return draft.UpdatePayload(blockID, payload)
	})
}

func (s *draftServiceImpl) ReorderBlock(ctx context.Context, userID uint64, blockID string, newIndex int) error {
	return s.mutate(ctx, userID, func(draft *content.Draft) error {
		return draft.ReorderBlock(blockID, newIndex)
	})
}

// RemoveBlock 删除组件后异步清理其引用的对象
func (s *draftServiceImpl) RemoveBlock(ctx context.Context, userID uint64, blockID string) error {
	var orphaned []string
	err := s.mutate(ctx, userID, func(draft *content.Draft) error {
		keys, err := draft.RemoveBlock(blockID)
		if err != nil {
			return err
		}
		orphaned = keys
		return nil
	})
	if err != nil {
		return err
	}

	if len(orphaned) > 0 {
		go func(keys []string) {
			bgCtx := context.Background()
			for _, key := range keys {
				if err := minio.DeleteFile(bgCtx, key); err != nil {
					log.Error("删除对象失败", "key", key, "err", err)
				}
			}
		}(orphaned)
	}
	return nil
}

// mutate 读取-修改-写回；草稿不存在时从空草稿开始
func (s *draftServiceImpl) mutate(ctx context.Context, userID uint64, fn func(*content.Draft) error) error {
	draft, err := s.draftRepo.LoadDraft(ctx, userID)
	if err != nil {
		return err
	}
	if draft == nil {
		draft = content.NewDraft()
	}

	if err = fn(draft); err != nil {
		return err
	}
	return s.draftRepo.SaveDraft(ctx, userID, draft)
}
