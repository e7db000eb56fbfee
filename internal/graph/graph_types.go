package graph

// DriveItem is one entry from a drive delta page or a folder enumeration.
type DriveItem struct {
	ID         string
	Name       string
	ParentID   string
	ParentPath string
	IsFolder   bool
	IsDeleted  bool
}

// FolderListing is the current file contents of a single drive folder.
// Files and FileIDs are aligned by index. Sub-folders are excluded.
type FolderListing struct {
	FolderID   string
	FolderPath string
	Files      []string
	FileIDs    []string
}

// rawDriveItem mirrors the Graph API wire shape. The folder and deleted
// facets are presence markers, not discriminants.
type rawDriveItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentReference struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	} `json:"parentReference"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	Deleted *struct {
		State string `json:"state"`
	} `json:"deleted,omitempty"`
}

func (r *rawDriveItem) toDriveItem() DriveItem {
	return DriveItem{
		ID:         r.ID,
		Name:       r.Name,
		ParentID:   r.ParentReference.ID,
		ParentPath: r.ParentReference.Path,
		IsFolder:   r.Folder != nil,
		IsDeleted:  r.Deleted != nil,
	}
}

// deltaPage is one response page from the drive delta endpoint.
type deltaPage struct {
	Value     []rawDriveItem `json:"value"`
	NextLink  string         `json:"@odata.nextLink"`
	DeltaLink string         `json:"@odata.deltaLink"`
}

// childrenPage is one response page from the folder children endpoint.
type childrenPage struct {
	Value    []rawDriveItem `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

// graphErrorBody is the Graph API error envelope.
type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// tokenResponse is the OAuth2 client credentials token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// tokenErrorResponse is the OAuth2 token endpoint error envelope.
type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
