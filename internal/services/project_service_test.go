package services

import (
	"net/http"
	"testing"

	"github.com/sithub/sithub/internal/models"
)

func TestProjectCreate_PrivateDefaultsFalse(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	user := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)

	project, err := svc.Create(&CreateProjectRequest{Name: "api", RepoPath: "api.git"}, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if project.IsPrivate {
		t.Error("is_private must default to false")
	}
	if project.CreatedByID != user.ID {
		t.Errorf("created_by_id = %d, expected %d", project.CreatedByID, user.ID)
	}
}

func TestProjectListForUser_UnionWithoutDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	other := createTestUser(t, db, "other", "other@example.com", models.RoleDeveloper)

	created := createTestProject(t, db, "created-by-owner", owner.ID)
	joined := createTestProject(t, db, "owned-by-other", other.ID)
	createTestProject(t, db, "unrelated", other.ID)

	// owner is also a member of a project they created and of one they did not
	for _, pid := range []uint{created.ID, joined.ID} {
		if err := db.Create(&models.ProjectMember{ProjectID: pid, UserID: owner.ID, Role: models.RoleDeveloper}).Error; err != nil {
			t.Fatalf("failed to add membership: %v", err)
		}
	}

	projects, err := svc.ListForUser(owner.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("expected 2 projects (created + member, no duplicates), got %d", len(projects))
	}

	seen := map[uint]bool{}
	for _, p := range projects {
		if seen[p.ID] {
			t.Fatalf("project %d returned twice", p.ID)
		}
		seen[p.ID] = true
	}
	if !seen[created.ID] || !seen[joined.ID] {
		t.Errorf("expected projects %d and %d, got %v", created.ID, joined.ID, seen)
	}
}

func TestProjectDelete_CascadesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	member := createTestUser(t, db, "member", "member@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "doomed", owner.ID)

	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: member.ID, Role: models.RoleDeveloper})
	db.Create(&models.Branch{ProjectID: project.ID, Name: "main", IsDefault: true})
	db.Create(&models.PullRequest{ProjectID: project.ID, Title: "pr", SourceBranch: "a", TargetBranch: "b", AuthorID: owner.ID, Status: models.PRStatusOpen})
	db.Create(&models.TrivyScan{ProjectID: project.ID, Status: models.ScanStatusPending})

	if err := svc.Delete(project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.GetByID(project.ID); err == nil {
		t.Error("deleted project must not be retrievable")
	}

	var count int64
	db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 members after delete, got %d", count)
	}
	db.Model(&models.Branch{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 branches after delete, got %d", count)
	}
	db.Model(&models.PullRequest{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 pull requests after delete, got %d", count)
	}
	db.Model(&models.TrivyScan{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 scans after delete, got %d", count)
	}
}

func TestProjectCanModify(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	adminMember := createTestUser(t, db, "pm-admin", "pm-admin@example.com", models.RoleDeveloper)
	devMember := createTestUser(t, db, "pm-dev", "pm-dev@example.com", models.RoleDeveloper)
	outsider := createTestUser(t, db, "outsider", "outsider@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "guarded", owner.ID)

	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: adminMember.ID, Role: models.RoleAdmin})
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: devMember.ID, Role: models.RoleDeveloper})

	cases := []struct {
		name   string
		userID uint
		want   bool
	}{
		{"creator", owner.ID, true},
		{"admin member", adminMember.ID, true},
		{"developer member", devMember.ID, false},
		{"outsider", outsider.ID, false},
	}

	for _, tc := range cases {
		got, err := svc.CanModify(project.ID, tc.userID)
		if err != nil {
			t.Fatalf("%s: CanModify failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanModify = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestProjectIsParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	devMember := createTestUser(t, db, "pm-dev", "pm-dev@example.com", models.RoleDeveloper)
	outsider := createTestUser(t, db, "outsider", "outsider@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "guarded", owner.ID)

	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: devMember.ID, Role: models.RoleDeveloper})

	cases := []struct {
		name   string
		userID uint
		want   bool
	}{
		{"creator", owner.ID, true},
		{"developer member", devMember.ID, true},
		{"outsider", outsider.ID, false},
	}

	for _, tc := range cases {
		got, err := svc.IsParticipant(project.ID, tc.userID)
		if err != nil {
			t.Fatalf("%s: IsParticipant failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: IsParticipant = %v, expected %v", tc.name, got, tc.want)
		}
	}

	if _, err := svc.IsParticipant(9999, owner.ID); err == nil {
		t.Error("expected not-found for unknown project")
	}
}

func TestAddMember_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	member := createTestUser(t, db, "member", "member@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "team", owner.ID)

	if _, err := svc.AddMember(project.ID, member.ID, models.RoleDeveloper); err != nil {
		t.Fatalf("first AddMember failed: %v", err)
	}

	_, err := svc.AddMember(project.ID, member.ID, models.RoleAdmin)
	if err == nil {
		t.Fatal("expected conflict for duplicate membership")
	}
	if status := appErrStatus(t, err); status != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, status)
	}
}

func TestAddMember_UnknownUserOrProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "team", owner.ID)

	if _, err := svc.AddMember(project.ID, 9999, models.RoleDeveloper); err == nil {
		t.Error("expected not-found for unknown user")
	} else if status := appErrStatus(t, err); status != http.StatusNotFound {
		t.Errorf("unknown user: expected status %d, got %d", http.StatusNotFound, status)
	}

	if _, err := svc.AddMember(9999, owner.ID, models.RoleDeveloper); err == nil {
		t.Error("expected not-found for unknown project")
	} else if status := appErrStatus(t, err); status != http.StatusNotFound {
		t.Errorf("unknown project: expected status %d, got %d", http.StatusNotFound, status)
	}
}

func TestProjectUpdate_PartialFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "owner", "owner@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "old-name", owner.ID)

	newName := "new-name"
	updated, err := svc.Update(project.ID, &UpdateProjectRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Name != "new-name" {
		t.Errorf("name = %q, expected %q", updated.Name, "new-name")
	}
	if updated.RepoPath != project.RepoPath {
		t.Errorf("repo_path changed unexpectedly: %q", updated.RepoPath)
	}
}
