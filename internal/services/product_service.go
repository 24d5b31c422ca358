package services

import (
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/storage"
)

const originalPrefix = "original"

type ProductService struct {
	Prods *repos.ProductRepo
	Files *storage.Store
}

func NewProductService(prods *repos.ProductRepo, files *storage.Store) *ProductService {
	return &ProductService{Prods: prods, Files: files}
}

// Upload is one incoming file: original name plus content.
type Upload struct {
	FileName string
	Data     []byte
}

func productNotFound(pno int64) error {
	return apperr.NotFound("PRODUCT_NOT_FOUND", fmt.Sprintf("product not found: pno=%d", pno))
}

// Register inserts the product, stores its files under original/<pno>/, and
// records the image rows in upload order.
func (s *ProductService) Register(dto domain.ProductDTO, uploads []Upload) (int64, error) {
	pno, err := s.Prods.Insert(dto.Pname, dto.Price, dto.Pdesc)
	if err != nil {
		return 0, err
	}
	if len(uploads) == 0 {
		return pno, nil
	}

	images := make([]domain.ProductImage, 0, len(uploads))
	for i, up := range uploads {
		saved := fmt.Sprintf("%s_%s", uuid.NewString(), up.FileName)
		objPath := path.Join(originalPrefix, fmt.Sprint(pno), saved)
		if err := s.Files.Upload(objPath, up.Data); err != nil {
			return 0, apperr.New(500, "STORAGE_ERROR", err.Error())
		}
		images = append(images, domain.ProductImage{Pno: pno, Path: objPath, FileName: up.FileName, Ord: i})
	}
	if err := s.Prods.InsertImages(pno, images); err != nil {
		return 0, err
	}
	return pno, nil
}

// Get returns the product DTO with its full image path list. Soft-deleted
// products read as not found.
func (s *ProductService) Get(pno int64) (domain.ProductDTO, error) {
	p, err := s.Prods.Get(pno)
	if err != nil {
		return domain.ProductDTO{}, err
	}
	if p == nil || p.DelFlag {
		return domain.ProductDTO{}, productNotFound(pno)
	}
	images, err := s.Prods.Images(pno)
	if err != nil {
		return domain.ProductDTO{}, err
	}
	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Path)
	}
	return domain.ProductDTO{
		Pno: p.Pno, Pname: p.Pname, Price: p.Price, Pdesc: p.Pdesc,
		DelFlag: p.DelFlag, UploadFileNames: names,
	}, nil
}

// Modify updates the row and replaces the image list wholesale: the client
// sends the paths it wants kept plus any new ones; dropped objects are
// removed from storage.
func (s *ProductService) Modify(dto domain.ProductDTO) error {
	ok, err := s.Prods.Update(dto.Pno, dto.Pname, dto.Price, dto.Pdesc)
	if err != nil {
		return err
	}
	if !ok {
		return productNotFound(dto.Pno)
	}

	old, err := s.Prods.Images(dto.Pno)
	if err != nil {
		return err
	}
	keep := map[string]bool{}
	for _, p := range dto.UploadFileNames {
		keep[p] = true
	}
	var dropped []string
	for _, img := range old {
		if !keep[img.Path] {
			dropped = append(dropped, img.Path)
		}
	}

	if err := s.Prods.ClearImages(dto.Pno); err != nil {
		return err
	}
	images := make([]domain.ProductImage, 0, len(dto.UploadFileNames))
	for i, p := range dto.UploadFileNames {
		images = append(images, domain.ProductImage{Pno: dto.Pno, Path: p, FileName: path.Base(p), Ord: i})
	}
	if err := s.Prods.InsertImages(dto.Pno, images); err != nil {
		return err
	}
	if len(dropped) > 0 {
		if err := s.Files.Remove(dropped...); err != nil {
			return apperr.New(500, "STORAGE_ERROR", err.Error())
		}
	}
	return nil
}

// Remove soft-deletes: the row stays (carts referencing it heal on read).
func (s *ProductService) Remove(pno int64) error {
	ok, err := s.Prods.SoftDelete(pno)
	if err != nil {
		return err
	}
	if !ok {
		return productNotFound(pno)
	}
	return nil
}

func (s *ProductService) List(page, size int) (PageResponse[domain.ProductDTO], error) {
	offset := (page - 1) * size
	products, total, err := s.Prods.List(size, offset)
	if err != nil {
		return PageResponse[domain.ProductDTO]{}, err
	}

	pnos := make([]int64, 0, len(products))
	for _, p := range products {
		pnos = append(pnos, p.Pno)
	}
	thumbs, err := s.Prods.Thumbnails(pnos)
	if err != nil {
		return PageResponse[domain.ProductDTO]{}, err
	}

	dtos := make([]domain.ProductDTO, 0, len(products))
	for _, p := range products {
		names := []string{}
		if t, ok := thumbs[p.Pno]; ok {
			names = append(names, t)
		}
		dtos = append(dtos, domain.ProductDTO{
			Pno: p.Pno, Pname: p.Pname, Price: p.Price, Pdesc: p.Pdesc,
			DelFlag: p.DelFlag, UploadFileNames: names,
		})
	}
	return BuildPageResponse(dtos, page, size, total), nil
}
