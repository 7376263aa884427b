package repository

import (
	"orgchart/internal/model"

	"gorm.io/gorm"
)

// OrgNodeRepository 定义组织树节点的持久化操作。
// 组织树在内存中是唯一的事实来源，数据库只保存它的快照：
// 启动时 FindAll 重建整棵树，每次变更后 ReplaceAll 整体覆盖。
type OrgNodeRepository interface {
	// FindAll 返回全部节点，按 sort_order 排序，保证同一父节点下的子节点保持原有顺序。
	FindAll() ([]model.OrgNode, error)
	Count() (int64, error)
	// ReplaceAll 在一个事务内清空表并写入新的快照。
	ReplaceAll(nodes []model.OrgNode) error
}

type orgNodeRepository struct {
	db *gorm.DB
}

func NewOrgNodeRepository(db *gorm.DB) OrgNodeRepository {
	return &orgNodeRepository{db: db}
}

func (r *orgNodeRepository) FindAll() ([]model.OrgNode, error) {
	var nodes []model.OrgNode
	if err := r.db.Order("sort_order ASC").Order("id ASC").Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *orgNodeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.OrgNode{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orgNodeRepository) ReplaceAll(nodes []model.OrgNode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.OrgNode{}).Error; err != nil {
			return err
		}
		if len(nodes) == 0 {
			return nil
		}
		return tx.Create(&nodes).Error
	})
}
