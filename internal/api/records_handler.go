package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"smartfolio/internal/database"
	"smartfolio/internal/resume"
)

// RecordsHandler 负责七类列表型档案记录的增删改查。
// 列表顺序由 position 字段决定，渲染端按此顺序输出、不重排。
type RecordsHandler struct {
	db *gorm.DB
}

// NewRecordsHandler 构造 RecordsHandler。
func NewRecordsHandler(db *gorm.DB) *RecordsHandler {
	return &RecordsHandler{db: db}
}

var errInvalidRecordID = errors.New("invalid record id")

func recordIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidRecordID
	}
	return uint(id), nil
}

// validDateString 校验 "2006-01-02" 形式的日期字符串。
func validDateString(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validOptionalDate(value *string) bool {
	if value == nil || *value == "" {
		return true
	}
	return validDateString(*value)
}

// deleteOwned 删除归属于当前用户的一条记录；找不到返回 404。
func (h *RecordsHandler) deleteOwned(c *gin.Context, model any) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, err := recordIDParam(c)
	if err != nil {
		BadRequest(c, "invalid record id")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(model)
	if res.Error != nil {
		Internal(c, "failed to delete record")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "record not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- Projects ----

type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	ProjectLink string   `json:"projectLink"`
	GithubRepo  string   `json:"githubRepo"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     *string  `json:"endDate"`
	Position    int      `json:"position"`
}

type projectResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TechStack   []string `json:"techStack,omitempty"`
	ProjectLink string   `json:"projectLink,omitempty"`
	GithubRepo  string   `json:"githubRepo,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     *string  `json:"endDate,omitempty"`
	Position    int      `json:"position"`
}

func newProjectResponse(p database.Project) projectResponse {
	var tech []string
	_ = json.Unmarshal(p.TechStack, &tech)
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		TechStack:   tech,
		ProjectLink: p.ProjectLink,
		GithubRepo:  p.GithubRepo,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Position:    p.Position,
	}
}

func (r projectRequest) apply(p *database.Project) error {
	if !validDateString(r.StartDate) || !validOptionalDate(r.EndDate) {
		return errors.New("invalid date")
	}
	tech, err := json.Marshal(r.TechStack)
	if err != nil {
		return err
	}
	p.Title = r.Title
	p.Description = r.Description
	p.TechStack = datatypes.JSON(tech)
	p.ProjectLink = r.ProjectLink
	p.GithubRepo = r.GithubRepo
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
	p.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListProjects(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.Project
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list projects")
		return
	}
	out := make([]projectResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, newProjectResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateProject(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.Project{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create project")
		return
	}
	c.JSON(http.StatusCreated, newProjectResponse(row))
}

func (h *RecordsHandler) UpdateProject(c *gin.Context) {
	row := database.Project{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(row))
}

func (h *RecordsHandler) DeleteProject(c *gin.Context) {
	h.deleteOwned(c, &database.Project{})
}

// ---- Education ----

type educationRequest struct {
	Institute string  `json:"institute" binding:"required"`
	Degree    string  `json:"degree" binding:"required"`
	Branch    string  `json:"branch" binding:"required"`
	StartYear int     `json:"startYear" binding:"required"`
	EndYear   *int    `json:"endYear"`
	Score     float64 `json:"cgpaOrPercentage"`
	Position  int     `json:"position"`
}

type educationResponse struct {
	ID        uint    `json:"id"`
	Institute string  `json:"institute"`
	Degree    string  `json:"degree"`
	Branch    string  `json:"branch"`
	StartYear int     `json:"startYear"`
	EndYear   *int    `json:"endYear,omitempty"`
	Score     float64 `json:"cgpaOrPercentage"`
	Position  int     `json:"position"`
}

func newEducationResponse(e database.Education) educationResponse {
	return educationResponse{
		ID:        e.ID,
		Institute: e.Institute,
		Degree:    e.Degree,
		Branch:    e.Branch,
		StartYear: e.StartYear,
		EndYear:   e.EndYear,
		Score:     e.Score,
		Position:  e.Position,
	}
}

func (r educationRequest) apply(e *database.Education) error {
	e.Institute = r.Institute
	e.Degree = r.Degree
	e.Branch = r.Branch
	e.StartYear = r.StartYear
	e.EndYear = r.EndYear
	e.Score = r.Score
	e.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListEducation(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.Education
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list education")
		return
	}
	out := make([]educationResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, newEducationResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateEducation(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.Education{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create education")
		return
	}
	c.JSON(http.StatusCreated, newEducationResponse(row))
}

func (h *RecordsHandler) UpdateEducation(c *gin.Context) {
	row := database.Education{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update education")
		return
	}
	c.JSON(http.StatusOK, newEducationResponse(row))
}

func (h *RecordsHandler) DeleteEducation(c *gin.Context) {
	h.deleteOwned(c, &database.Education{})
}

// ---- Skills ----

type skillGroupRequest struct {
	Category string             `json:"category" binding:"required"`
	Skills   []resume.SkillItem `json:"skills" binding:"required"`
	Position int                `json:"position"`
}

type skillGroupResponse struct {
	ID       uint               `json:"id"`
	Category string             `json:"category"`
	Skills   []resume.SkillItem `json:"skills"`
	Position int                `json:"position"`
}

func newSkillGroupResponse(g database.SkillGroup) skillGroupResponse {
	var items []resume.SkillItem
	_ = json.Unmarshal(g.Skills, &items)
	return skillGroupResponse{
		ID:       g.ID,
		Category: g.Category,
		Skills:   items,
		Position: g.Position,
	}
}

func (r skillGroupRequest) apply(g *database.SkillGroup) error {
	items, err := json.Marshal(r.Skills)
	if err != nil {
		return err
	}
	g.Category = r.Category
	g.Skills = datatypes.JSON(items)
	g.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListSkills(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.SkillGroup
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list skills")
		return
	}
	out := make([]skillGroupResponse, 0, len(rows))
	for _, g := range rows {
		out = append(out, newSkillGroupResponse(g))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateSkillGroup(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req skillGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.SkillGroup{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create skill group")
		return
	}
	c.JSON(http.StatusCreated, newSkillGroupResponse(row))
}

func (h *RecordsHandler) UpdateSkillGroup(c *gin.Context) {
	row := database.SkillGroup{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req skillGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update skill group")
		return
	}
	c.JSON(http.StatusOK, newSkillGroupResponse(row))
}

func (h *RecordsHandler) DeleteSkillGroup(c *gin.Context) {
	h.deleteOwned(c, &database.SkillGroup{})
}

// ---- Achievements ----

type achievementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Position    int    `json:"position"`
}

type achievementResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Position    int    `json:"position"`
}

func newAchievementResponse(a database.Achievement) achievementResponse {
	return achievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Position:    a.Position,
	}
}

func (r achievementRequest) apply(a *database.Achievement) error {
	if !validDateString(r.Date) {
		return errors.New("invalid date")
	}
	a.Title = r.Title
	a.Description = r.Description
	a.Date = r.Date
	a.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListAchievements(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.Achievement
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list achievements")
		return
	}
	out := make([]achievementResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, newAchievementResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateAchievement(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req achievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.Achievement{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create achievement")
		return
	}
	c.JSON(http.StatusCreated, newAchievementResponse(row))
}

func (h *RecordsHandler) UpdateAchievement(c *gin.Context) {
	row := database.Achievement{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req achievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update achievement")
		return
	}
	c.JSON(http.StatusOK, newAchievementResponse(row))
}

func (h *RecordsHandler) DeleteAchievement(c *gin.Context) {
	h.deleteOwned(c, &database.Achievement{})
}

// ---- Positions of responsibility ----

type positionRequest struct {
	Title        string  `json:"title" binding:"required"`
	Organization string  `json:"organization" binding:"required"`
	Description  string  `json:"description"`
	StartDate    string  `json:"startDate" binding:"required"`
	EndDate      *string `json:"endDate"`
	Position     int     `json:"position"`
}

type positionResponse struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Organization string  `json:"organization"`
	Description  string  `json:"description,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate,omitempty"`
	Position     int     `json:"position"`
}

func newPositionResponse(p database.PositionRecord) positionResponse {
	return positionResponse{
		ID:           p.ID,
		Title:        p.Title,
		Organization: p.Organization,
		Description:  p.Description,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Position:     p.Position,
	}
}

func (r positionRequest) apply(p *database.PositionRecord) error {
	if !validDateString(r.StartDate) || !validOptionalDate(r.EndDate) {
		return errors.New("invalid date")
	}
	p.Title = r.Title
	p.Organization = r.Organization
	p.Description = r.Description
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
	p.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListPositions(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.PositionRecord
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list positions")
		return
	}
	out := make([]positionResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, newPositionResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreatePosition(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.PositionRecord{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create position")
		return
	}
	c.JSON(http.StatusCreated, newPositionResponse(row))
}

func (h *RecordsHandler) UpdatePosition(c *gin.Context) {
	row := database.PositionRecord{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update position")
		return
	}
	c.JSON(http.StatusOK, newPositionResponse(row))
}

func (h *RecordsHandler) DeletePosition(c *gin.Context) {
	h.deleteOwned(c, &database.PositionRecord{})
}

// ---- Certifications ----

type certificationRequest struct {
	Title           string `json:"title" binding:"required"`
	Issuer          string `json:"issuer" binding:"required"`
	Description     string `json:"description"`
	IssueDate       string `json:"issueDate" binding:"required"`
	CertificateLink string `json:"certificateLink"`
	Position        int    `json:"position"`
}

type certificationResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Issuer          string `json:"issuer"`
	Description     string `json:"description,omitempty"`
	IssueDate       string `json:"issueDate"`
	CertificateLink string `json:"certificateLink,omitempty"`
	Position        int    `json:"position"`
}

func newCertificationResponse(cert database.Certification) certificationResponse {
	return certificationResponse{
		ID:              cert.ID,
		Title:           cert.Title,
		Issuer:          cert.Issuer,
		Description:     cert.Description,
		IssueDate:       cert.IssueDate,
		CertificateLink: cert.CertificateLink,
		Position:        cert.Position,
	}
}

func (r certificationRequest) apply(cert *database.Certification) error {
	if !validDateString(r.IssueDate) {
		return errors.New("invalid date")
	}
	cert.Title = r.Title
	cert.Issuer = r.Issuer
	cert.Description = r.Description
	cert.IssueDate = r.IssueDate
	cert.CertificateLink = r.CertificateLink
	cert.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListCertifications(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.Certification
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list certifications")
		return
	}
	out := make([]certificationResponse, 0, len(rows))
	for _, cert := range rows {
		out = append(out, newCertificationResponse(cert))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateCertification(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.Certification{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create certification")
		return
	}
	c.JSON(http.StatusCreated, newCertificationResponse(row))
}

func (h *RecordsHandler) UpdateCertification(c *gin.Context) {
	row := database.Certification{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update certification")
		return
	}
	c.JSON(http.StatusOK, newCertificationResponse(row))
}

func (h *RecordsHandler) DeleteCertification(c *gin.Context) {
	h.deleteOwned(c, &database.Certification{})
}

// ---- Courses ----

type courseRequest struct {
	Title           string `json:"title" binding:"required"`
	Provider        string `json:"provider" binding:"required"`
	CertificateLink string `json:"certificateLink"`
	CompletionDate  string `json:"completionDate" binding:"required"`
	Position        int    `json:"position"`
}

type courseResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Provider        string `json:"provider"`
	CertificateLink string `json:"certificateLink,omitempty"`
	CompletionDate  string `json:"completionDate"`
	Position        int    `json:"position"`
}

func newCourseResponse(course database.Course) courseResponse {
	return courseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Provider:        course.Provider,
		CertificateLink: course.CertificateLink,
		CompletionDate:  course.CompletionDate,
		Position:        course.Position,
	}
}

func (r courseRequest) apply(course *database.Course) error {
	if !validDateString(r.CompletionDate) {
		return errors.New("invalid date")
	}
	course.Title = r.Title
	course.Provider = r.Provider
	course.CertificateLink = r.CertificateLink
	course.CompletionDate = r.CompletionDate
	course.Position = r.Position
	return nil
}

func (h *RecordsHandler) ListCourses(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var rows []database.Course
	if err := h.listOwned(c, userID, &rows); err != nil {
		Internal(c, "failed to list courses")
		return
	}
	out := make([]courseResponse, 0, len(rows))
	for _, course := range rows {
		out = append(out, newCourseResponse(course))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordsHandler) CreateCourse(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row := database.Course{UserID: userID}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		Internal(c, "failed to create course")
		return
	}
	c.JSON(http.StatusCreated, newCourseResponse(row))
}

func (h *RecordsHandler) UpdateCourse(c *gin.Context) {
	row := database.Course{}
	if !h.loadOwned(c, &row) {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.apply(&row); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		Internal(c, "failed to update course")
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(row))
}

func (h *RecordsHandler) DeleteCourse(c *gin.Context) {
	h.deleteOwned(c, &database.Course{})
}

// ---- shared helpers ----

func (h *RecordsHandler) listOwned(c *gin.Context, userID uint, dest any) error {
	return h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(dest).Error
}

// loadOwned 按路径参数加载归属于当前用户的记录。
// 处理完错误响应后返回 false，调用方直接 return 即可。
func (h *RecordsHandler) loadOwned(c *gin.Context, dest any) bool {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return false
	}
	id, err := recordIDParam(c)
	if err != nil {
		BadRequest(c, "invalid record id")
		return false
	}
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "record not found")
			return false
		}
		Internal(c, "failed to query record")
		return false
	}
	return true
}
