package services

import (
	"testing"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWBSFixture(t *testing.T) (*WBSService, *gorm.DB, models.Project, models.User) {
	t.Helper()
	db := newTestDB(t)
	user := createTestUser(t, db, "manager@pcm.test", models.RoleManager)
	project := createTestProject(t, db, user)
	return NewWBSService(db, logger.NewNop()), db, project, user
}

func changeLogEntries(t *testing.T, db *gorm.DB, itemID uint) []models.WBSChangeLog {
	t.Helper()
	var entries []models.WBSChangeLog
	require.NoError(t, db.Where("wbs_item_id = ?", itemID).Order("id").Find(&entries).Error)
	return entries
}

// emptySnapshot treats both SQL NULL renderings of a JSON column as absent
func emptySnapshot(b []byte) bool {
	return len(b) == 0 || string(b) == "null"
}

func TestWBSCreateAssignsLevelsAndSortOrders(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)
	assert.Equal(t, 1, root.LevelNumber)
	assert.Equal(t, 0, root.SortOrder)
	assert.Nil(t, root.ParentID)

	child, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{
		ParentID: &root.ID, Code: "1.1", Name: "Requirements",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, child.LevelNumber)
	assert.Equal(t, 0, child.SortOrder)

	sibling, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{
		ParentID: &root.ID, Code: "1.2", Name: "Design",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sibling.LevelNumber)
	assert.Equal(t, 1, sibling.SortOrder)

	tree, err := svc.ProjectTree(project.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "1.1", tree[0].Children[0].Code)
	assert.Equal(t, "1.2", tree[0].Children[1].Code)

	// One CREATE audit entry per item, no before snapshot
	for _, id := range []uint{root.ID, child.ID, sibling.ID} {
		entries := changeLogEntries(t, db, id)
		require.Len(t, entries, 1)
		assert.Equal(t, models.ChangeOpCreate, entries[0].Operation)
		assert.True(t, emptySnapshot(entries[0].Before))
		assert.False(t, emptySnapshot(entries[0].After))
		assert.Equal(t, user.ID, entries[0].UserID)
	}
}

func TestWBSCreateValidatesInput(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	_, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Name: "No code"})
	assert.True(t, utils.IsValidation(err))

	_, err = svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0"})
	assert.True(t, utils.IsValidation(err))
}

func TestWBSCreateRejectsMissingParent(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	_, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{
		ParentID: uintPtr(999), Code: "1.1", Name: "Orphan",
	})
	assert.True(t, utils.IsNotFound(err))

	// A parent in another project does not resolve either
	other := createTestProject(t, db, user)
	foreign, err := svc.Create(other.ID, user.ID, dto.CreateWBSItemRequest{Code: "X", Name: "Foreign root"})
	require.NoError(t, err)

	_, err = svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{
		ParentID: &foreign.ID, Code: "1.1", Name: "Cross-project child",
	})
	assert.True(t, utils.IsNotFound(err))
}

func TestWBSUpdateEditsContentOnly(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)

	updated, err := svc.Update(root.ID, user.ID, dto.UpdateWBSItemRequest{
		Name:        strPtr("Detailed Analysis"),
		Description: strPtr("Scope and requirements"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Detailed Analysis", updated.Name)
	assert.Equal(t, "1.0", updated.Code)
	assert.Equal(t, root.LevelNumber, updated.LevelNumber)
	assert.Equal(t, root.SortOrder, updated.SortOrder)

	entries := changeLogEntries(t, db, root.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ChangeOpUpdate, entries[1].Operation)
	assert.False(t, emptySnapshot(entries[1].Before))
	assert.False(t, emptySnapshot(entries[1].After))
}

func TestWBSUpdateNotFound(t *testing.T) {
	svc, _, _, user := newWBSFixture(t)

	_, err := svc.Update(42, user.ID, dto.UpdateWBSItemRequest{Name: strPtr("x")})
	assert.True(t, utils.IsNotFound(err))
}

func TestWBSDeleteRefusedWithChildren(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)
	_, err = svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &root.ID, Code: "1.1", Name: "Requirements"})
	require.NoError(t, err)
	_, err = svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &root.ID, Code: "1.2", Name: "Design"})
	require.NoError(t, err)

	err = svc.Delete(root.ID, user.ID, "cleanup")
	assert.True(t, utils.IsConflict(err))

	// Root survives and no DELETE entry was written
	var count int64
	require.NoError(t, db.Model(&models.WBSItem{}).Where("id = ?", root.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	for _, entry := range changeLogEntries(t, db, root.ID) {
		assert.NotEqual(t, models.ChangeOpDelete, entry.Operation)
	}
}

func TestWBSDeleteLeafCompactsSiblings(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	first, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "First"})
	require.NoError(t, err)
	second, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "2.0", Name: "Second"})
	require.NoError(t, err)
	third, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "3.0", Name: "Third"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(second.ID, user.ID, "obsolete branch"))

	remaining, err := svc.ListProject(project.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	orders := map[uint]int{}
	for _, item := range remaining {
		orders[item.ID] = item.SortOrder
	}
	assert.Equal(t, 0, orders[first.ID])
	assert.Equal(t, 1, orders[third.ID])

	entries := changeLogEntries(t, db, second.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ChangeOpDelete, entries[1].Operation)
	assert.False(t, emptySnapshot(entries[1].Before))
	assert.True(t, emptySnapshot(entries[1].After))
	assert.Equal(t, "obsolete branch", entries[1].Reason)
}

func TestWBSDeleteRequiresChangeReason(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)

	err = svc.Delete(root.ID, user.ID, "")
	assert.True(t, utils.IsValidation(err))

	// The item survives the refused delete
	var count int64
	require.NoError(t, db.Model(&models.WBSItem{}).Where("id = ?", root.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestWBSMutationSurvivesAuditSinkFailure(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	// Break the audit sink; the primary mutation must still commit
	require.NoError(t, db.Migrator().DropTable(&models.WBSChangeLog{}))

	item, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.Error(t, err)
	assert.True(t, utils.IsChangeLogFailed(err))
	require.NotNil(t, item)

	var count int64
	require.NoError(t, db.Model(&models.WBSItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Same contract on update: the edit lands, the failure is flagged
	updated, err := svc.Update(item.ID, user.ID, dto.UpdateWBSItemRequest{Name: strPtr("Renamed")})
	assert.True(t, utils.IsChangeLogFailed(err))
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestWBSReorderNotFoundLeavesNoAuditTrail(t *testing.T) {
	svc, db, _, user := newWBSFixture(t)

	_, err := svc.Reorder(777, user.ID, dto.ReorderWBSItemRequest{NewSortOrder: intPtr(0)})
	assert.True(t, utils.IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.WBSChangeLog{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestWBSReorderValidatesSortOrder(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)

	_, err = svc.Reorder(root.ID, user.ID, dto.ReorderWBSItemRequest{})
	assert.True(t, utils.IsValidation(err))

	_, err = svc.Reorder(root.ID, user.ID, dto.ReorderWBSItemRequest{NewSortOrder: intPtr(-1)})
	assert.True(t, utils.IsValidation(err))
}

func TestWBSReorderSameParentKeepsRequestedOrder(t *testing.T) {
	svc, db, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)
	child, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &root.ID, Code: "1.1", Name: "Requirements"})
	require.NoError(t, err)
	_, err = svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &root.ID, Code: "1.2", Name: "Design"})
	require.NoError(t, err)

	moved, err := svc.Reorder(child.ID, user.ID, dto.ReorderWBSItemRequest{NewSortOrder: intPtr(5)})
	require.NoError(t, err)

	// Parent and level untouched, requested order stored verbatim
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, root.ID, *moved.ParentID)
	assert.Equal(t, 5, moved.SortOrder)
	assert.Equal(t, 2, moved.LevelNumber)

	entries := changeLogEntries(t, db, child.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ChangeOpReorder, entries[1].Operation)
	assert.Contains(t, string(entries[1].Before), `"sortOrder":0`)
	assert.Contains(t, string(entries[1].After), `"sortOrder":5`)
}

func TestWBSReorderReparentCascadesLevels(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	rootA, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Phase A"})
	require.NoError(t, err)
	branch, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &rootA.ID, Code: "1.1", Name: "Branch"})
	require.NoError(t, err)
	leaf, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &branch.ID, Code: "1.1.1", Name: "Leaf"})
	require.NoError(t, err)

	rootB, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "2.0", Name: "Phase B"})
	require.NoError(t, err)
	nest, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &rootB.ID, Code: "2.1", Name: "Nest"})
	require.NoError(t, err)

	// Move the branch under a deeper parent; the whole subtree shifts
	moved, err := svc.Reorder(branch.ID, user.ID, dto.ReorderWBSItemRequest{
		NewParentID:  &nest.ID,
		NewSortOrder: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, moved.LevelNumber)

	reloadedLeaf, err := svc.GetItem(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloadedLeaf.LevelNumber)

	// Level invariant holds for every item
	items, err := svc.ListProject(project.ID)
	require.NoError(t, err)
	byID := map[uint]models.WBSItem{}
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, item := range items {
		if item.ParentID == nil {
			assert.Equal(t, 1, item.LevelNumber)
		} else {
			assert.Equal(t, byID[*item.ParentID].LevelNumber+1, item.LevelNumber)
		}
	}
}

func TestWBSReorderRejectsCycle(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Root"})
	require.NoError(t, err)
	child, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &root.ID, Code: "1.1", Name: "Child"})
	require.NoError(t, err)
	grandchild, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &child.ID, Code: "1.1.1", Name: "Grandchild"})
	require.NoError(t, err)

	// Moving the root under its own grandchild must fail
	_, err = svc.Reorder(root.ID, user.ID, dto.ReorderWBSItemRequest{
		NewParentID:  &grandchild.ID,
		NewSortOrder: intPtr(0),
	})
	assert.True(t, utils.IsValidation(err))

	// Moving an item under itself must fail too
	_, err = svc.Reorder(child.ID, user.ID, dto.ReorderWBSItemRequest{
		NewParentID:  &child.ID,
		NewSortOrder: intPtr(0),
	})
	assert.True(t, utils.IsValidation(err))
}

func TestWBSReorderReparentCompactsOriginGroup(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	rootA, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Phase A"})
	require.NoError(t, err)
	rootB, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "2.0", Name: "Phase B"})
	require.NoError(t, err)

	var children []models.WBSItem
	for _, code := range []string{"1.1", "1.2", "1.3"} {
		item, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{ParentID: &rootA.ID, Code: code, Name: "Task " + code})
		require.NoError(t, err)
		children = append(children, *item)
	}

	// Move the middle child across, insert at the front
	moved, err := svc.Reorder(children[1].ID, user.ID, dto.ReorderWBSItemRequest{
		NewParentID:  &rootB.ID,
		NewSortOrder: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.SortOrder)
	assert.Equal(t, 2, moved.LevelNumber)

	// The origin group closed its gap
	first, err := svc.GetItem(children[0].ID)
	require.NoError(t, err)
	third, err := svc.GetItem(children[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, 1, third.SortOrder)
}

func TestWBSHistoryNewestFirst(t *testing.T) {
	svc, _, project, user := newWBSFixture(t)

	root, err := svc.Create(project.ID, user.ID, dto.CreateWBSItemRequest{Code: "1.0", Name: "Analysis"})
	require.NoError(t, err)
	_, err = svc.Update(root.ID, user.ID, dto.UpdateWBSItemRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)

	history, err := svc.History(root.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChangeOpUpdate, history[0].Operation)
	assert.Equal(t, models.ChangeOpCreate, history[1].Operation)

	_, err = svc.History(999)
	assert.True(t, utils.IsNotFound(err))
}
