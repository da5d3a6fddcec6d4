package user

type CreateUserReq struct {
	Name string `json:"name" validate:"required"`
	Age  *int   `json:"age" validate:"omitempty,gte=0"`
}

type UpdateUserReq struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}
